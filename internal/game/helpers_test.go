package game

import (
	"fmt"

	"github.com/vovakirdan/escape/internal/core"
)

func obj(name string, x, y int) ObjectSpec {
	return ObjectSpec{
		Name:     name,
		Hover:    name + " hover",
		Click:    name + " click",
		Use:      name + " use",
		Rect:     core.NewRect(x, y, 40, 40),
		Host:     NoIndex,
		Hidden:   NoIndex,
		Required: NoIndex,
	}
}

func item(name string, x, y int) ObjectSpec {
	o := obj(name, x, y)
	o.Pickupable = true
	o.Required = NotUsable
	return o
}

// puzzleLevel places everything within reach of a character at (500,500)
// except the Gem and the Coin.
//
//	0 Key   pickupable
//	1 Box   needs Key, reveals Gem
//	2 Gem   hidden in Box
//	3 Lamp  bare-click clickable
//	4 Vase  needs object 5
//	5 Coin  pickupable, out of reach
//	6 Door  needs Gem, terminal
func puzzleLevel() Descriptor {
	box := obj("Box", 450, 400)
	box.Required = 0
	box.Hidden = 2
	gem := item("Gem", 450, 300)
	gem.Host = 1
	lamp := obj("Lamp", 550, 400)
	lamp.Clickable = true
	vase := obj("Vase", 600, 400)
	vase.Required = 5
	door := obj("Door", 640, 420)
	door.Required = 2

	return Descriptor{
		ID:          1,
		Description: "A locked room",
		Start:       core.Point{X: 500, Y: 500},
		Terminal:    NoIndex,
		Objects: []ObjectSpec{
			item("Key", 400, 400),
			box,
			gem,
			lamp,
			vase,
			item("Coin", 100, 100),
			door,
		},
	}
}

// exitLevel is the smallest completable level: pick up the key, use it on the door.
// The door is pinned as terminal so tests may append objects.
func exitLevel(id int) Descriptor {
	door := obj("Door", 600, 400)
	door.Required = 0
	return Descriptor{
		ID:          id,
		Description: fmt.Sprintf("Exit %d", id),
		Start:       core.Point{X: 500, Y: 500},
		Terminal:    1,
		Objects:     []ObjectSpec{item("Key", 400, 400), door},
	}
}

func newTestSession(d Descriptor) *Session {
	lvl, err := NewLevel(d)
	if err != nil {
		panic(err)
	}
	return NewSession(lvl, DefaultRules())
}

// center returns the middle of object i.
func center(s *Session, i int) (int, int) {
	return s.level.Objects[i].Rect.Center()
}

// slotCenter returns the middle of inventory entry i.
func slotCenter(s *Session, i int) (int, int) {
	return s.inventory.entries[i].Slot.Center()
}

type fakeSource struct {
	levels map[int]Descriptor
	errs   map[int]error
	count  int
}

func newFakeSource(descs ...Descriptor) *fakeSource {
	src := &fakeSource{levels: map[int]Descriptor{}, errs: map[int]error{}, count: len(descs)}
	for i, d := range descs {
		src.levels[i+1] = d
	}
	return src
}

func (f *fakeSource) Count() int { return f.count }

func (f *fakeSource) Load(id int) (Descriptor, error) {
	if err, ok := f.errs[id]; ok {
		return Descriptor{}, err
	}
	d, ok := f.levels[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("level %d missing", id)
	}
	return d, nil
}

type memKeeper struct {
	records  map[int]Record
	unlocked map[int]bool
	count    int
	updates  int
}

func newMemKeeper(count int) *memKeeper {
	return &memKeeper{records: map[int]Record{}, unlocked: map[int]bool{1: true}, count: count}
}

func (k *memKeeper) Record(id int) (Record, bool) {
	r, ok := k.records[id]
	return r, ok
}

func (k *memKeeper) UpdateRecord(id int, r Record) error {
	k.records[id] = r
	k.updates++
	return nil
}

func (k *memKeeper) IsUnlocked(id int) bool { return id == 1 || k.unlocked[id] }

func (k *memKeeper) Unlock(id int) error {
	k.unlocked[id] = true
	return nil
}

func (k *memKeeper) UnlockAll() error {
	for id := 1; id <= k.count; id++ {
		k.unlocked[id] = true
	}
	return nil
}
