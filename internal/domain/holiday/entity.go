package holiday

// Holiday is one double-time date from the externally managed holiday set.
type Holiday struct {
	Date string `json:"date"` // "2006-01-02"
	Name string `json:"name"`
}
