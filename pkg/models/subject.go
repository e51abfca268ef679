package models

// SubjectListResponse represents the outer wrapper of the subjects API response
type SubjectListResponse struct {
	Data []Subject `json:"data"`
}

// Subject represents a single tracked animal in the EarthRanger catalog
type Subject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SubjectType string `json:"subject_type"`
	CommonName  string `json:"common_name"`
	Sex         string `json:"sex"`
	IsActive    bool   `json:"is_active"`
}

// NameLookup builds an id -> name map, skipping records missing either field.
func NameLookup(subjects []Subject) map[string]string {
	lookup := make(map[string]string, len(subjects))
	for _, s := range subjects {
		if s.ID == "" || s.Name == "" {
			continue
		}
		lookup[s.ID] = s.Name
	}
	return lookup
}
