package model

// Table is a physical dining table.  The set of tables is seeded once and
// never changes while the server runs.
type Table struct {
    ID       uint64 // restaurant_tables.id
    Location string // restaurant_tables.location, a free-text label
    Capacity int    // restaurant_tables.capacity, max seats
}

// DefaultTables is the floor plan written on first start.
var DefaultTables = []Table{
    {Location: "window", Capacity: 2},
    {Location: "window", Capacity: 2},
    {Location: "hall-center", Capacity: 4},
    {Location: "hall-center", Capacity: 4},
    {Location: "room", Capacity: 6},
}
