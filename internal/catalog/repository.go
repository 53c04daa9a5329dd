package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ploychompoo03/management-market/internal/store"
)

// Repository persists the catalog in the local store under a single slot and
// seeds the demo inventory on first read, so a fresh register is usable
// immediately.
type Repository struct {
	S  store.Store
	mu sync.Mutex
}

func seedItems() []Item {
	price := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	return []Item{
		{ID: "P001", Name: "น้ำดื่ม 600 ml", Category: "เครื่องดื่ม", Barcode: "88562435921", Price: price(10), Cost: price(6), Stock: 120, Unit: "ขวด"},
		{ID: "P002", Name: "โค้ก 1.25 ลิตร", Category: "เครื่องดื่ม", Barcode: "885195912312", Price: price(35), Cost: price(26), Stock: 30, Unit: "ขวด"},
		{ID: "P003", Name: "น้ำปลาแท้ 700 ml", Category: "เครื่องปรุง", Barcode: "885123456789", Price: price(48), Cost: price(35), Stock: 45, Unit: "ขวด"},
		{ID: "P004", Name: "ผงซักฟอก 900 g", Category: "ของใช้ในบ้าน", Barcode: "885998877665", Price: price(45), Cost: price(33), Stock: 85, Unit: "ถุง"},
		{ID: "P005", Name: "น้ำส้ม 250 ml", Category: "เครื่องดื่ม", Barcode: "8851111222333", Price: price(20), Cost: price(13), Stock: 20, Unit: "ขวด"},
		{ID: "P006", Name: "บะหมี่กึ่งสำเร็จรูป", Category: "อาหารแห้ง", Barcode: "885222333444", Price: price(50), Cost: price(38), Stock: 12, Unit: "แพ็ค"},
		{ID: "P007", Name: "นมกล่อง UHT", Category: "เครื่องดื่ม", Barcode: "885333344455", Price: price(30), Cost: price(22), Stock: 15, Unit: "กล่อง"},
		{ID: "P008", Name: "แชมพู 300 ml", Category: "ของใช้ส่วนตัว", Barcode: "885555666777", Price: price(18), Cost: price(11), Stock: 75, Unit: "ขวด"},
		{ID: "P009", Name: "ยาสีฟัน 150 กรัม", Category: "ของใช้ส่วนตัว", Barcode: "8856666777888", Price: price(22), Cost: price(15), Stock: 39, Unit: "หลอด"},
		{ID: "P010", Name: "ทิชชู่เช็ดหน้า 20 แผ่น", Category: "ของใช้ในบ้าน", Barcode: "8857777888999", Price: price(35), Cost: price(24), Stock: 25, Unit: "ห่อ"},
	}
}

func seedCategories() []string {
	return []string{"เครื่องดื่ม", "เครื่องปรุง", "อาหารแห้ง", "ของใช้ส่วนตัว", "ของใช้ในบ้าน"}
}

// LoadCategories returns the configured category list, seeding the default
// set when the slot is empty.
func (r *Repository) LoadCategories() ([]string, error) {
	var categories []string
	ok, err := r.S.Get(store.KeyCategories, &categories)
	if err != nil {
		return nil, err
	}
	if !ok {
		categories = seedCategories()
		if err := r.S.Put(store.KeyCategories, categories); err != nil {
			return nil, err
		}
	}
	return categories, nil
}

// Load returns all catalog items, seeding the demo set when the slot is
// empty. A corrupt slot is surfaced, not silently reseeded.
func (r *Repository) Load() ([]Item, error) {
	var items []Item
	ok, err := r.S.Get(store.KeyProducts, &items)
	if err != nil {
		return nil, err
	}
	if !ok {
		items = seedItems()
		if err := r.S.Put(store.KeyProducts, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Save replaces the whole catalog slot.
func (r *Repository) Save(items []Item) error {
	return r.S.Put(store.KeyProducts, items)
}

// Get returns the item with the given id.
func (r *Repository) Get(id string) (Item, bool, error) {
	items, err := r.Load()
	if err != nil {
		return Item{}, false, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, true, nil
		}
	}
	return Item{}, false, nil
}

// FindByBarcode returns the item with an exact barcode match.
func (r *Repository) FindByBarcode(code string) (Item, bool, error) {
	items, err := r.Load()
	if err != nil {
		return Item{}, false, err
	}
	for _, it := range items {
		if it.Barcode == code {
			return it, true, nil
		}
	}
	return Item{}, false, nil
}

// FindByNameSubstring returns the first item whose name contains the text,
// case-insensitively, in catalog order.
func (r *Repository) FindByNameSubstring(text string) (Item, bool, error) {
	items, err := r.Load()
	if err != nil {
		return Item{}, false, err
	}
	lower := strings.ToLower(text)
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), lower) {
			return it, true, nil
		}
	}
	return Item{}, false, nil
}

// NextID generates the next product id in the P### sequence.
func (r *Repository) NextID() (string, error) {
	items, err := r.Load()
	if err != nil {
		return "", err
	}
	max := 0
	for _, it := range items {
		if n, err := strconv.Atoi(strings.TrimPrefix(it.ID, "P")); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("P%03d", max+1), nil
}

// AdjustStock applies a delta to the item's stock, clamped at zero.
// Settlement uses it to decrement sold quantities.
func (r *Repository) AdjustStock(id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.Load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Stock += delta
		if items[i].Stock < 0 {
			items[i].Stock = 0
		}
		return r.Save(items)
	}
	return nil
}

// Insert appends a new item to the catalog.
func (r *Repository) Insert(item Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.Load()
	if err != nil {
		return err
	}
	items = append(items, item)
	return r.Save(items)
}

// Replace swaps the stored item with the same id. It reports whether the id
// was found.
func (r *Repository) Replace(item Item) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.Load()
	if err != nil {
		return false, err
	}
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			return true, r.Save(items)
		}
	}
	return false, nil
}

// Remove deletes the item with the given id. Removing an absent id is not an
// error.
func (r *Repository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, err := r.Load()
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return r.Save(kept)
}
