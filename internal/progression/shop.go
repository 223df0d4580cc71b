package progression

// ItemKind separates the two cosmetic slots.
type ItemKind string

const (
	ItemSkin  ItemKind = "skin"
	ItemTrail ItemKind = "trail"
)

// Item is a purchasable cosmetic.
type Item struct {
	ID   string
	Name string
	Kind ItemKind
	Cost int // Coins; 0 = default or level-reward only
}

// catalog is the fixed shop inventory. Level-reward cosmetics appear with
// cost 0 and cannot be bought, only earned.
var catalog = []Item{
	{ID: "skin_classic", Name: "Classic", Kind: ItemSkin, Cost: 0},
	{ID: "skin_bolt", Name: "Bolt", Kind: ItemSkin, Cost: 250},
	{ID: "skin_frost", Name: "Frost", Kind: ItemSkin, Cost: 400},
	{ID: "skin_magma", Name: "Magma", Kind: ItemSkin, Cost: 600},
	{ID: "skin_comet", Name: "Comet", Kind: ItemSkin, Cost: 0},
	{ID: "skin_ember", Name: "Ember", Kind: ItemSkin, Cost: 0},
	{ID: "skin_prism", Name: "Prism", Kind: ItemSkin, Cost: 0},
	{ID: "skin_eclipse", Name: "Eclipse", Kind: ItemSkin, Cost: 0},
	{ID: "skin_void", Name: "Void", Kind: ItemSkin, Cost: 0},

	{ID: "trail_none", Name: "None", Kind: ItemTrail, Cost: 0},
	{ID: "trail_dots", Name: "Dots", Kind: ItemTrail, Cost: 150},
	{ID: "trail_ribbon", Name: "Ribbon", Kind: ItemTrail, Cost: 300},
	{ID: "trail_stars", Name: "Stars", Kind: ItemTrail, Cost: 500},
	{ID: "trail_sparks", Name: "Sparks", Kind: ItemTrail, Cost: 0},
	{ID: "trail_aurora", Name: "Aurora", Kind: ItemTrail, Cost: 0},
	{ID: "trail_ion", Name: "Ion", Kind: ItemTrail, Cost: 0},
	{ID: "trail_nova", Name: "Nova", Kind: ItemTrail, Cost: 0},
	{ID: "trail_singularity", Name: "Singularity", Kind: ItemTrail, Cost: 0},
}

// Catalog returns the shop inventory.
func Catalog() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

// ItemByID looks up a catalog entry.
func ItemByID(id string) (Item, bool) {
	for _, it := range catalog {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Owns reports whether the cosmetic is unlocked.
func (l *Ledger) Owns(id string) bool {
	return l.data.Owned[id]
}

// Owned returns the unlocked item IDs in catalog order.
func (l *Ledger) Owned() []string {
	var out []string
	for _, it := range catalog {
		if l.data.Owned[it.ID] {
			out = append(out, it.ID)
		}
	}
	return out
}

// Purchase debits the wallet and unlocks the item. Guarded with
// ErrUnknownItem, ErrAlreadyOwned, and ErrInsufficientFunds.
func (l *Ledger) Purchase(id string) error {
	it, ok := ItemByID(id)
	if !ok {
		return ErrUnknownItem
	}
	if l.data.Owned[id] {
		return ErrAlreadyOwned
	}
	if it.Cost > l.data.Coins {
		return ErrInsufficientFunds
	}

	l.data.Coins -= it.Cost
	l.data.Owned[id] = true
	return l.save()
}

// Equip selects an owned cosmetic for its slot.
func (l *Ledger) Equip(id string) error {
	it, ok := ItemByID(id)
	if !ok {
		return ErrUnknownItem
	}
	if !l.data.Owned[id] {
		return ErrNotOwned
	}

	switch it.Kind {
	case ItemSkin:
		l.data.EquippedSkin = id
	case ItemTrail:
		l.data.EquippedTrail = id
	}
	return l.save()
}

// Equipped returns the selected skin and trail IDs.
func (l *Ledger) Equipped() (skin, trail string) {
	return l.data.EquippedSkin, l.data.EquippedTrail
}
