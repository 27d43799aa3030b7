package admin

import (
	"context"
	"errors"
	"testing"

	"wulf-order-services/internal/queue"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type captureSubmitter struct {
	envelopes []queue.Envelope
}

func (c *captureSubmitter) Submit(_ context.Context, env queue.Envelope) error {
	c.envelopes = append(c.envelopes, env)
	return nil
}

func ids(rows []Entity) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.EntityID())
	}
	return out
}

func TestFilterStockByIngredientName(t *testing.T) {
	rows, err := SampleDataset().Filter(TabStock, "ayam", "")
	require.NoError(t, err)
	require.Equal(t, []string{"STK-002"}, ids(rows))

	item, ok := rows[0].(StockItem)
	if !ok {
		t.Fatalf("expected StockItem, got %T", rows[0])
	}
	if item.Name != "Ayam Fillet" {
		t.Fatalf("expected Ayam Fillet, got %s", item.Name)
	}
}

func TestFilterPerTab(t *testing.T) {
	data := SampleDataset()
	cases := []struct {
		name     string
		tab      Tab
		term     string
		category string
		want     []string
	}{
		{"staff by email", TabStaff, "SARI@", "", []string{"STF-003"}},
		{"staff by position", TabStaff, "chef", "", []string{"STF-003"}},
		{"sessions by table", TabSessions, "vip", "", []string{"GS-004"}},
		{"tables by location", TabTables, "main hall", "", []string{"TBL-001", "TBL-002"}},
		{"menu by category term", TabMenu, "beverage", "", []string{"MENU-003", "MENU-005"}},
		{"menu active category", TabMenu, "", "Dessert", []string{"MENU-006"}},
		{"menu category is exact", TabMenu, "", "dessert", []string{}},
		{"menu all category", TabMenu, "goreng", AllCategory, []string{"MENU-001", "MENU-006"}},
		{"transactions by order", TabTransactions, "wlf-2024-002", "", []string{"TRX-002"}},
		{"reservations by customer", TabReservations, "surya", "", []string{"RES-002"}},
		{"stock transactions by type", TabStockTransactions, "out", "", []string{"ST-TRX-002", "ST-TRX-004"}},
		{"stock transactions by performer", TabStockTransactions, "budi", "", []string{"ST-TRX-003"}},
		{"empty term keeps all", TabStock, "  ", "", []string{"STK-001", "STK-002", "STK-003", "STK-004"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := data.Filter(tc.tab, tc.term, tc.category)
			require.NoError(t, err)
			require.Equal(t, tc.want, ids(rows))
		})
	}
}

func TestFilterUnknownTab(t *testing.T) {
	if _, err := SampleDataset().Filter(Tab("vouchers"), "", ""); !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("expected ErrUnknownTab, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	s := SampleDataset().Summary()
	if s.ActiveSessions != 2 {
		t.Fatalf("expected 2 active sessions, got %d", s.ActiveSessions)
	}
	if s.AvailableTables != 1 || s.TotalTables != 4 {
		t.Fatalf("expected 1/4 tables, got %d/%d", s.AvailableTables, s.TotalTables)
	}
	if s.Revenue != 284000 || s.RevenueLabel != "Rp 284K" {
		t.Fatalf("unexpected revenue %d %q", s.Revenue, s.RevenueLabel)
	}
	if s.LowStock != 2 {
		t.Fatalf("expected 2 low stock items, got %d", s.LowStock)
	}
}

func TestTabs(t *testing.T) {
	info, err := LookupTab("staff")
	require.NoError(t, err)
	if !info.CanAdd || info.Group != GroupMaster {
		t.Fatalf("unexpected staff tab %+v", info)
	}
	if info.DeletePrompt != "Are you sure you want to delete this staf?" {
		t.Fatalf("unexpected prompt %q", info.DeletePrompt)
	}

	info, err = LookupTab("transactions")
	require.NoError(t, err)
	if info.CanAdd || info.Group != GroupRealtime {
		t.Fatalf("unexpected transactions tab %+v", info)
	}

	if len(Tabs()) != 8 {
		t.Fatalf("expected 8 tabs, got %d", len(Tabs()))
	}
}

func TestDecodeEntity(t *testing.T) {
	entity, err := DecodeEntity(TabStock, []byte(`{"id":"STK-009","name":"Cabai","category":"Produce","currentStock":3,"minStock":2,"unit":"kg"}`))
	require.NoError(t, err)
	item, ok := entity.(StockItem)
	if !ok || item.Name != "Cabai" {
		t.Fatalf("unexpected entity %#v", entity)
	}

	if _, err := DecodeEntity(TabStock, []byte(`{"name":"Cabai","color":"red"}`)); !errors.Is(err, ErrInvalidEntity) {
		t.Fatalf("expected ErrInvalidEntity, got %v", err)
	}
	if _, err := DecodeEntity(Tab("nope"), []byte(`{}`)); !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("expected ErrUnknownTab, got %v", err)
	}
}

func TestMutationsAreLoggedNotApplied(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sub := &captureSubmitter{}
	svc := NewService(SampleDataset(), sub, zap.New(core))
	ctx := context.Background()

	created, err := svc.Create(ctx, "tab-1", Staff{ID: "STF-005", Name: "Dewi", Email: "dewi@wulf.com", Position: "Waiter"})
	require.NoError(t, err)
	if created.Persisted || created.Action != ActionCreate {
		t.Fatalf("unexpected result %+v", created)
	}

	_, err = svc.Update(ctx, "tab-1", "MENU-001", MenuItem{ID: "MENU-001", Name: "Nasi Goreng", Category: "Main Course", Price: 1})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, "tab-1", TabTables, "TBL-004")
	require.NoError(t, err)
	require.Equal(t, "TBL-004", deleted.ID)

	rows, err := svc.Filter(TabStaff, "", "")
	require.NoError(t, err)
	if len(rows) != 4 {
		t.Fatalf("expected staff to stay at 4 rows, got %d", len(rows))
	}
	rows, err = svc.Filter(TabTables, "", "")
	require.NoError(t, err)
	if len(rows) != 4 {
		t.Fatalf("expected tables to stay at 4 rows, got %d", len(rows))
	}
	item, _, _ := svc.Dataset().Find(TabMenu, "MENU-001")
	if item.(MenuItem).Price != 25000 {
		t.Fatalf("expected menu price untouched, got %d", item.(MenuItem).Price)
	}

	require.Len(t, sub.envelopes, 3)
	for _, env := range sub.envelopes {
		if env.Kind != queue.KindAdminMutation {
			t.Fatalf("unexpected kind %s", env.Kind)
		}
	}
	if logs.FilterMessage("admin mutation requested").Len() != 3 {
		t.Fatalf("expected 3 mutation log entries, got %d", logs.FilterMessage("admin mutation requested").Len())
	}
}

func TestMutationErrors(t *testing.T) {
	svc := NewService(SampleDataset(), nil, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "tab-1", Transaction{ID: "TRX-009"}); !errors.Is(err, ErrAddNotSupported) {
		t.Fatalf("expected ErrAddNotSupported, got %v", err)
	}
	if _, err := svc.Update(ctx, "tab-1", "STF-404", Staff{}); !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}
	if _, err := svc.Delete(ctx, "tab-1", Tab("vouchers"), "X"); !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("expected ErrUnknownTab, got %v", err)
	}
}

func TestCategoryManager(t *testing.T) {
	m := NewCategoryManager()
	require.Equal(t, DefaultCategories, m.Categories())

	if _, err := m.Add("   "); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
	if _, err := m.Add(" Beverage "); !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
	name, err := m.Add("beverage")
	require.NoError(t, err)
	if name != "beverage" {
		t.Fatalf("expected case-distinct label to be added, got %q", name)
	}

	m.Delete(AllCategory)
	if m.Categories()[0] != AllCategory {
		t.Fatal("expected all to survive deletion")
	}

	require.NoError(t, m.SetActive("Dessert"))
	m.Delete("Beverage")
	if m.Active() != "Dessert" {
		t.Fatalf("expected active to stay Dessert, got %s", m.Active())
	}
	m.Delete("Dessert")
	if m.Active() != AllCategory {
		t.Fatalf("expected active to reset to all, got %s", m.Active())
	}
	require.Equal(t, []string{AllCategory, "Main Course", "Appetizer", "beverage"}, m.Categories())

	if err := m.SetActive("Dessert"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}
