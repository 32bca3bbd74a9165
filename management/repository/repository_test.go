package repository

import (
	"context"
	"testing"

	"taller/internal/config"
	"taller/management/database"
	"taller/management/model"

	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	if err != nil {
		t.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))

	orders := []*model.Order{
		{Plate: "ABC123", CustomerName: "Ana", Status: model.OrderReceived},
		{Plate: "ABC123", CustomerName: "Ana", Status: model.OrderReady},
		{Plate: "abc123", CustomerName: "Luis", Status: model.OrderReady},
		{Plate: "ZZZ999", CustomerName: "Marta", Status: model.OrderDelivered},
	}
	for _, o := range orders {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatal(err)
		}
		if o.ID == "" {
			t.Fatal("id not assigned on create")
		}
	}

	t.Run("list by plate is exact", func(t *testing.T) {
		got, err := repo.ListByPlate(ctx, "ABC123", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d orders, want 2", len(got))
		}
		for _, o := range got {
			if o.Plate != "ABC123" {
				t.Fatalf("unexpected plate %q", o.Plate)
			}
		}

		limited, err := repo.ListByPlate(ctx, "ABC123", 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(limited) != 1 {
			t.Fatalf("limit ignored: %d", len(limited))
		}
	})

	t.Run("count by status", func(t *testing.T) {
		counts, err := repo.CountByStatus(ctx)
		if err != nil {
			t.Fatal(err)
		}
		want := map[string]int64{"received": 1, "in_progress": 0, "ready": 2, "delivered": 1}
		for k, v := range want {
			if counts[k] != v {
				t.Fatalf("counts[%s] = %d, want %d", k, counts[k], v)
			}
		}
	})

	t.Run("keyword and paginate", func(t *testing.T) {
		got, err := repo.Find(ctx, WithKeyword("Ana", "customer_name", "plate"), Paginate(1, 1))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d", len(got))
		}
		total, err := repo.Count(ctx, WithKeyword("Ana", "customer_name", "plate"))
		if err != nil {
			t.Fatal(err)
		}
		if total != 2 {
			t.Fatalf("total = %d", total)
		}
	})

	t.Run("update and delete", func(t *testing.T) {
		id := orders[0].ID
		n, err := repo.Update(ctx, map[string]interface{}{"status": model.OrderInProgress}, WithID(id))
		if err != nil || n != 1 {
			t.Fatalf("update: n=%d err=%v", n, err)
		}
		o, err := repo.GetByID(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if o.Status != model.OrderInProgress {
			t.Fatalf("status = %s", o.Status)
		}

		n, err = repo.Delete(ctx, WithID(id))
		if err != nil || n != 1 {
			t.Fatalf("delete: n=%d err=%v", n, err)
		}
		gone, err := repo.First(ctx, WithID(id))
		if err != nil {
			t.Fatal(err)
		}
		if gone != nil {
			t.Fatal("soft deleted order still visible")
		}
	})
}

func TestBudgetRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository(openTestDB(t))

	b := &model.Budget{
		CustomerName: "Ana",
		Plate:        "ABC123",
		Status:       model.BudgetDraft,
		Items: []model.BudgetItem{
			{Description: "Neumático", Quantity: 2, UnitPrice: 3500},
			{Description: "Mano de obra", Quantity: 1, UnitPrice: 2000},
		},
	}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("budget not found")
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d", len(got.Items))
	}
	if got.Total() != 9000 {
		t.Fatalf("total = %d", got.Total())
	}

	missing, err := repo.Get(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("missing = %v, err = %v", missing, err)
	}

	n, err := repo.Remove(ctx, b.ID)
	if err != nil || n != 1 {
		t.Fatalf("remove: n=%d err=%v", n, err)
	}
	if got, _ := repo.Get(ctx, b.ID); got != nil {
		t.Fatal("budget still visible after remove")
	}
}
