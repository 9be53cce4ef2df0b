package utils

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
)

// ToUint parses a positive path id that fits a Postgres integer key.
func ToUint(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return 0, err
	}
	if n == 0 || n > math.MaxInt32 {
		return 0, strconv.ErrRange
	}
	return uint(n), nil
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"detail": message})
}
