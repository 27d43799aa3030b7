package admin

import "fmt"

type Summary struct {
	ActiveSessions  int    `json:"activeSessions"`
	AvailableTables int    `json:"availableTables"`
	TotalTables     int    `json:"totalTables"`
	Revenue         int64  `json:"revenue"`
	RevenueLabel    string `json:"revenueLabel"`
	LowStock        int    `json:"lowStock"`
}

// Summary backs the four cards above the tabs. Revenue sums every
// transaction regardless of status.
func (d Dataset) Summary() Summary {
	var s Summary
	for _, session := range d.Sessions {
		if session.Status == "active" {
			s.ActiveSessions++
		}
	}
	s.TotalTables = len(d.Tables)
	for _, table := range d.Tables {
		if table.Status == "available" {
			s.AvailableTables++
		}
	}
	for _, trx := range d.Transactions {
		s.Revenue += trx.Amount
	}
	s.RevenueLabel = fmt.Sprintf("Rp %gK", float64(s.Revenue)/1000)
	for _, item := range d.Stock {
		if item.Status == "low" || item.Status == "out-of-stock" {
			s.LowStock++
		}
	}
	return s
}
