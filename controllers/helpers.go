package controllers

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// toJSON marshals v into a JSON column value. Nil and unmarshalable
// values become a null column.
func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
