package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "flights.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nested", "flights.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestSaveAndTopFlights(t *testing.T) {
	store := openTemp(t)

	for _, f := range []Flight{
		{Seed: 1, Distance: 40, Coins: 3, Ticks: 900, Cause: "ground"},
		{Seed: 2, Distance: 120, Coins: 11, Ticks: 3000, Cause: "bat"},
		{Seed: 3, Distance: 75, Coins: 6, Ticks: 1800, Cause: "blade"},
	} {
		id, err := store.SaveFlight(f)
		if err != nil {
			t.Fatalf("SaveFlight() failed: %v", err)
		}
		if id == uuid.Nil {
			t.Fatal("SaveFlight() returned a nil id")
		}
	}

	top, err := store.TopFlights(2)
	if err != nil {
		t.Fatalf("TopFlights() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 flights, got %d", len(top))
	}
	if top[0].Distance != 120 || top[1].Distance != 75 {
		t.Errorf("expected distances [120 75], got [%d %d]", top[0].Distance, top[1].Distance)
	}
	if top[0].Cause != "bat" {
		t.Errorf("expected cause bat, got %q", top[0].Cause)
	}
}

func TestSaveFlightKeepsGivenID(t *testing.T) {
	store := openTemp(t)
	want := uuid.New()

	got, err := store.SaveFlight(Flight{ID: want, Distance: 10, Cause: "madfly"})
	if err != nil {
		t.Fatalf("SaveFlight() failed: %v", err)
	}
	if got != want {
		t.Fatalf("expected id %s, got %s", want, got)
	}

	f, err := store.FlightByID(want)
	if err != nil {
		t.Fatalf("FlightByID() failed: %v", err)
	}
	if f == nil || f.Distance != 10 || f.Cause != "madfly" {
		t.Fatalf("unexpected flight: %+v", f)
	}

	missing, err := store.FlightByID(uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for unknown id, got (%v, %v)", missing, err)
	}
}

func TestBestDistanceAndStats(t *testing.T) {
	store := openTemp(t)

	best, err := store.BestDistance()
	if err != nil {
		t.Fatalf("BestDistance() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("expected 0 on empty store, got %d", best)
	}

	store.SaveFlight(Flight{Distance: 50, Coins: 2, Cause: "ground"})
	store.SaveFlight(Flight{Distance: 150, Coins: 8, Cause: "bat"})

	best, _ = store.BestDistance()
	if best != 150 {
		t.Errorf("expected best 150, got %d", best)
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Flights != 2 || st.TotalCoins != 10 || st.AvgDistance != 100 {
		t.Errorf("unexpected stats: %+v", st)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	st, _ = store.Stats()
	if st.Flights != 0 {
		t.Errorf("expected no flights after Clear, got %d", st.Flights)
	}
}
