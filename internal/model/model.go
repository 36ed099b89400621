package model

// Item is a single checklist row.
//
// ID is assigned once on creation and never changes. Status is true when the
// item is done.
type Item struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status bool   `json:"status"`
}

func (it Item) Done() bool { return it.Status }

// Movement relocates one row. From and To are positions in the order as it was
// before the mutation that produced the movement.
type Movement struct {
	From int `json:"from"`
	To   int `json:"to"`
}
