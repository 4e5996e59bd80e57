package models

// Status is a point-in-time view of the controller counters and last entries.
type Status struct {
	Date    string `json:"date"`
	Uptime  string `json:"uptime"`
	TxCount uint32 `json:"tx_count"`
	RxCount uint32 `json:"rx_count"`
	LastTx  string `json:"last_tx"`
	LastRx  string `json:"last_rx"`
}
