package app

// Popup is a transient notification stamped with the app clock.
type Popup struct {
	Text string
	Born float64
}

// age returns seconds since the popup was created.
func (p Popup) age(now float64) float64 {
	return now - p.Born
}

// prunePopups drops popups at least ttl seconds old. It returns a new
// slice so earlier App values keep their own list.
func prunePopups(popups []Popup, now, ttl float64) []Popup {
	var keep []Popup
	for _, p := range popups {
		if p.age(now) < ttl {
			keep = append(keep, p)
		}
	}
	return keep
}
