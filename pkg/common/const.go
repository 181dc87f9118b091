package common

const (
	KEY_PRICE_SERIES        = "price_series:%s"
	KEY_SETTLEMENT_CALENDAR = "settlement_calendar:%s:%d"
)

const (
	DateFormat    = "2006-01-02"
	CSVDateFormat = "2006/01/02"
)
