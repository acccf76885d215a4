package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkordes/wanderlust/internal/domain"
)

// maxWaypoints is the number of intermediate stops Google Maps accepts in a
// directions link.
const maxWaypoints = 8

// defaultMapCenter is shown when there is nothing else to center on.
const defaultMapCenter = "Taipei"

// LatLng is a device position supplied by the client.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p LatLng) String() string {
	return fmt.Sprintf("%g,%g", p.Lat, p.Lng)
}

// Route holds the map links for one day.
type Route struct {
	DirectionsURL string `json:"directionsUrl,omitempty"`
	EmbedURL      string `json:"embedUrl"`
}

// DirectionsURL builds a driving-directions link from origin through the
// day's items. With focused set the link goes straight to that item;
// otherwise the last item is the destination and up to eight earlier items
// become waypoints. A nil origin lets Maps use the device location.
// Returns "" when there is nothing to route to.
func DirectionsURL(origin *LatLng, items []domain.Item, focused *domain.Item) string {
	originQuery := "Current+Location"
	if origin != nil {
		originQuery = origin.String()
	}

	var dest string
	var waypoints []string
	switch {
	case focused != nil:
		dest = focused.MapQuery()
	case len(items) > 0:
		dest = items[len(items)-1].MapQuery()
		for _, it := range items[:len(items)-1] {
			if len(waypoints) == maxWaypoints {
				break
			}
			waypoints = append(waypoints, url.QueryEscape(it.MapQuery()))
		}
	default:
		return ""
	}

	var b strings.Builder
	b.WriteString("https://www.google.com/maps/dir/?api=1&origin=")
	b.WriteString(originQuery)
	b.WriteString("&destination=")
	b.WriteString(url.QueryEscape(dest))
	if len(waypoints) > 0 {
		b.WriteString("&waypoints=")
		b.WriteString(strings.Join(waypoints, "|"))
	}
	b.WriteString("&travelmode=driving")
	return b.String()
}

// EmbedURL builds the embeddable map link. It centers on the focused item,
// else on origin, else on the first item, else on a default city.
func EmbedURL(origin *LatLng, items []domain.Item, focused *domain.Item) string {
	center := defaultMapCenter
	switch {
	case focused != nil:
		center = focused.MapQuery()
	case origin != nil:
		center = origin.String()
	case len(items) > 0:
		center = items[0].MapQuery()
	}
	return "https://maps.google.com/maps?q=" + url.QueryEscape(center) + "&z=14&output=embed"
}

// DayRoute returns both map links for one day.
func DayRoute(origin *LatLng, items []domain.Item, focused *domain.Item) Route {
	return Route{
		DirectionsURL: DirectionsURL(origin, items, focused),
		EmbedURL:      EmbedURL(origin, items, focused),
	}
}
