package configs

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// RestaurantConfig is the business profile printed on invoices. Snapshots are
// immutable; an update replaces the whole value.
type RestaurantConfig struct {
	Name              string `json:"name"`
	TaxID             string `json:"taxId"`
	InvoiceRangeStart string `json:"invoiceRangeStart"`
	InvoiceRangeEnd   string `json:"invoiceRangeEnd"`
	Language          string `json:"language"`
	Currency          string `json:"currency"`
	LogoPath          string `json:"logoPath"`
}

func DefaultRestaurantConfig() RestaurantConfig {
	return RestaurantConfig{
		Name:     "Sazon 1804",
		Language: "es",
		Currency: "HNL",
	}
}

// RestaurantConfigStore keeps the file-backed config in memory.
type RestaurantConfigStore struct {
	path    string
	current atomic.Pointer[RestaurantConfig]
	writeMu sync.Mutex
}

// LoadRestaurantConfig reads path, creating it with defaults when it does not
// exist. Read or parse failures fall back to defaults and are only logged.
func LoadRestaurantConfig(path string) *RestaurantConfigStore {
	s := &RestaurantConfigStore{path: path}
	s.reload()
	return s
}

func (s *RestaurantConfigStore) Get() RestaurantConfig {
	return *s.current.Load()
}

// Update writes cfg wholesale and swaps the in-memory snapshot to what is on disk.
func (s *RestaurantConfigStore) Update(cfg RestaurantConfig) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.write(cfg); err != nil {
		log.Printf("⚠️ restaurant config write failed: %v", err)
		return err
	}
	s.reload()
	return nil
}

func (s *RestaurantConfigStore) reload() {
	cfg := DefaultRestaurantConfig()

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := s.write(cfg); err != nil {
			log.Printf("⚠️ cannot create restaurant config %s: %v", s.path, err)
		}
	case err != nil:
		log.Printf("⚠️ cannot read restaurant config %s, using defaults: %v", s.path, err)
	default:
		var loaded RestaurantConfig
		if err := json.Unmarshal(data, &loaded); err != nil {
			log.Printf("⚠️ invalid restaurant config %s, using defaults: %v", s.path, err)
		} else {
			cfg = loaded
		}
	}

	s.current.Store(&cfg)
}

func (s *RestaurantConfigStore) write(cfg RestaurantConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".config-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
