package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a bcrypt digest of an unguessable throwaway value. Login
// handlers compare against it when the username is unknown so that the
// unknown-user and wrong-password paths do equivalent work.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bizdesk-dummy-credential"), bcrypt.DefaultCost)

// HashPassword returns a salted bcrypt digest of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored digest.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// CheckDummy burns a bcrypt comparison without revealing anything. Always
// returns false.
func CheckDummy(password string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return false
}
