package domain

// Place is one recommendable catalog entry. Places are read-only to the
// planner; they only seed new items.
type Place struct {
	ID          string   `json:"id"`
	City        string   `json:"city"`
	Keyword     string   `json:"keyword"`
	Category    Category `json:"category"`
	Icon        string   `json:"img"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	MapsLink    string   `json:"mapsLink,omitempty"`
}

// ConnectionErrorPlaceID identifies the sentinel entry returned when the
// catalog could not be fetched.
const ConnectionErrorPlaceID = "error_msg"

// ConnectionErrorPlace is rendered in place of search results when the
// catalog source is unreachable.
func ConnectionErrorPlace() Place {
	return Place{
		ID:          ConnectionErrorPlaceID,
		City:        "系統訊息",
		Keyword:     "Error",
		Category:    CategoryMisc,
		Icon:        "⚠️",
		Title:       "連線提示",
		Location:    "資料庫",
		Description: "暫時無法連結至 Google Sheet 資料庫，請稍後再試。",
	}
}
