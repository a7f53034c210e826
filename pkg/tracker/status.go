package tracker

// StatusColors holds the UI class names for a status badge.
type StatusColors struct {
	Bg   string `json:"bg"`
	Text string `json:"text"`
	Dot  string `json:"dot"`
}

// StatusText returns the Korean display label for a status.
// Total over all Status values; unrecognized values render as 확인 불가.
func StatusText(s Status) string {
	switch s {
	case StatusPending:
		return "배송 준비중"
	case StatusPickedUp:
		return "집화 완료"
	case StatusInTransit:
		return "배송중"
	case StatusOutForDelivery:
		return "배송 출발"
	case StatusDelivered:
		return "배송 완료"
	default:
		return "확인 불가"
	}
}

// StatusColor returns the badge classes for a status. Total; unrecognized
// values get the same muted palette as unknown.
func StatusColor(s Status) StatusColors {
	switch s {
	case StatusPending:
		return StatusColors{Bg: "bg-gray-100", Text: "text-gray-700", Dot: "bg-gray-400"}
	case StatusPickedUp:
		return StatusColors{Bg: "bg-indigo-50", Text: "text-indigo-700", Dot: "bg-indigo-500"}
	case StatusInTransit:
		return StatusColors{Bg: "bg-blue-50", Text: "text-blue-700", Dot: "bg-blue-500"}
	case StatusOutForDelivery:
		return StatusColors{Bg: "bg-amber-50", Text: "text-amber-700", Dot: "bg-amber-500"}
	case StatusDelivered:
		return StatusColors{Bg: "bg-green-50", Text: "text-green-700", Dot: "bg-green-500"}
	default:
		return StatusColors{Bg: "bg-gray-100", Text: "text-gray-500", Dot: "bg-gray-300"}
	}
}

// AllStatuses lists every normalized status, in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusPickedUp,
		StatusInTransit,
		StatusOutForDelivery,
		StatusDelivered,
		StatusUnknown,
	}
}
