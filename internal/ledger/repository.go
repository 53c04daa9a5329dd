package ledger

import (
	"fmt"
	"sync"

	"github.com/ploychompoo03/management-market/internal/store"
)

// Repository persists the sales history in the local store, newest first.
type Repository struct {
	S  store.Store
	mu sync.Mutex
}

// Load returns all recorded sales, most recent first.
func (r *Repository) Load() ([]Sale, error) {
	var sales []Sale
	if _, err := r.S.Get(store.KeySales, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// Append records a completed sale, assigning the next invoice number.
func (r *Repository) Append(sale Sale) (Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sales, err := r.Load()
	if err != nil {
		return Sale{}, err
	}
	max := 0
	for _, s := range sales {
		var n int
		if _, err := fmt.Sscanf(s.Invoice, "#INV-%05d", &n); err == nil && n > max {
			max = n
		}
	}
	sale.Invoice = fmt.Sprintf("#INV-%05d", max+1)
	sales = append([]Sale{sale}, sales...)
	if err := r.S.Put(store.KeySales, sales); err != nil {
		return Sale{}, err
	}
	return sale, nil
}

// Get returns the sale with the given id.
func (r *Repository) Get(id string) (Sale, bool, error) {
	sales, err := r.Load()
	if err != nil {
		return Sale{}, false, err
	}
	for _, s := range sales {
		if s.ID == id {
			return s, true, nil
		}
	}
	return Sale{}, false, nil
}

// Remove deletes a sale from the history. Absent ids are ignored.
func (r *Repository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sales, err := r.Load()
	if err != nil {
		return err
	}
	kept := sales[:0]
	for _, s := range sales {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	return r.S.Put(store.KeySales, kept)
}
