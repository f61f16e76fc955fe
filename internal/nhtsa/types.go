package nhtsa

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Envelope mirrors the payload returned by /api/vehicles/decodevin.
type Envelope struct {
	Count   int            `json:"Count"`
	Message string         `json:"Message"`
	Results []ResultRecord `json:"Results"`
}

// ResultRecord is a single flattened decode result. The well-known keys are
// lifted into fields; every key is also kept in Fields.
type ResultRecord struct {
	ErrorCode   string
	ErrorText   string
	Message     string
	ModelYear   string
	Make        string
	Model       string
	Trim        string
	BodyClass   string
	Doors       string
	VehicleType string

	Fields map[string]string
}

// UnmarshalJSON accepts null and non-string values, which the API emits for
// variables it could not decode.
func (r *ResultRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		fields[key] = rawString(value)
	}
	*r = ResultRecord{
		ErrorCode:   fields["ErrorCode"],
		ErrorText:   fields["ErrorText"],
		Message:     fields["Message"],
		ModelYear:   fields["ModelYear"],
		Make:        fields["Make"],
		Model:       fields["Model"],
		Trim:        fields["Trim"],
		BodyClass:   fields["BodyClass"],
		Doors:       fields["Doors"],
		VehicleType: fields["VehicleType"],
		Fields:      fields,
	}
	return nil
}

// Field returns the trimmed value stored under key.
func (r ResultRecord) Field(key string) string {
	return strings.TrimSpace(r.Fields[key])
}

func (r ResultRecord) vehicleInfo() VehicleInfo {
	return VehicleInfo{
		Year:      r.ModelYear,
		Make:      r.Make,
		Model:     r.Model,
		BodyStyle: r.BodyClass,
		Doors:     parseDoors(r.Doors),
		Type:      VehicleType(r.BodyClass, r.VehicleType),
	}
}

// VehicleInfo is the decoded vehicle returned by a successful query.
type VehicleInfo struct {
	Year      string `json:"year"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	BodyStyle string `json:"body_style"`
	Doors     int    `json:"doors"`
	Type      string `json:"type"`
}

func parseDoors(value string) int {
	doors, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || doors < 0 {
		return 0
	}
	return doors
}

func rawString(value json.RawMessage) string {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}
