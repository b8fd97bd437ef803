package catalog

// Slot is one damage slot on the engineering board. Each slot belongs to
// exactly one facing direction and exactly one circuit.
type Slot struct {
	ID      string
	Dir     Direction
	System  System
	Circuit string
}

// The board layout: four slots per direction, circuits A-D each holding one
// slot of every direction. Completing a circuit self-repairs all four slots.
var slots = []Slot{
	{ID: "n1", Dir: North, System: SystemTorpedo, Circuit: "A"},
	{ID: "n2", Dir: North, System: SystemMine, Circuit: "B"},
	{ID: "n3", Dir: North, System: SystemDrone, Circuit: "C"},
	{ID: "n4", Dir: North, System: SystemSonar, Circuit: "D"},

	{ID: "s1", Dir: South, System: SystemSilence, Circuit: "A"},
	{ID: "s2", Dir: South, System: SystemTorpedo, Circuit: "B"},
	{ID: "s3", Dir: South, System: SystemMine, Circuit: "C"},
	{ID: "s4", Dir: South, System: SystemDrone, Circuit: "D"},

	{ID: "e1", Dir: East, System: SystemSonar, Circuit: "A"},
	{ID: "e2", Dir: East, System: SystemSilence, Circuit: "B"},
	{ID: "e3", Dir: East, System: SystemTorpedo, Circuit: "C"},
	{ID: "e4", Dir: East, System: SystemMine, Circuit: "D"},

	{ID: "w1", Dir: West, System: SystemDrone, Circuit: "A"},
	{ID: "w2", Dir: West, System: SystemSonar, Circuit: "B"},
	{ID: "w3", Dir: West, System: SystemSilence, Circuit: "C"},
	{ID: "w4", Dir: West, System: SystemMine, Circuit: "D"},
}

var slotsByID = func() map[string]Slot {
	m := make(map[string]Slot, len(slots))
	for _, s := range slots {
		m[s.ID] = s
	}
	return m
}()

var circuitSlots = func() map[string][]string {
	m := make(map[string][]string)
	for _, s := range slots {
		m[s.Circuit] = append(m[s.Circuit], s.ID)
	}
	return m
}()

// Slots returns every board slot in catalog order.
func Slots() []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// SlotByID looks up a slot by id.
func SlotByID(id string) (Slot, bool) {
	s, ok := slotsByID[id]
	return s, ok
}

// SlotsForDirection returns the slots of one facing direction in catalog
// order, which is the order engineer automation fills them.
func SlotsForDirection(d Direction) []Slot {
	var out []Slot
	for _, s := range slots {
		if s.Dir == d {
			out = append(out, s)
		}
	}
	return out
}

// Circuits returns the circuit ids.
func Circuits() []string {
	return []string{"A", "B", "C", "D"}
}

// CircuitSlots returns the four slot ids belonging to a circuit.
func CircuitSlots(circuit string) []string {
	ids := circuitSlots[circuit]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
