package tms

// RecordID/RecordStatus give the workflow layer uniform access to the four
// request variants without reflection.

func (r TransportRequest) RecordID() int        { return r.ID }
func (r TransportRequest) RecordStatus() Status { return r.Status }

func (r HighCostRequest) RecordID() int        { return r.ID }
func (r HighCostRequest) RecordStatus() Status { return r.Status }

func (r RefuelingRequest) RecordID() int        { return r.ID }
func (r RefuelingRequest) RecordStatus() Status { return r.Status }

func (r MaintenanceRequest) RecordID() int        { return r.ID }
func (r MaintenanceRequest) RecordStatus() Status { return r.Status }
