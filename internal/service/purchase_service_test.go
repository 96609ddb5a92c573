package service

import (
	"net/http"
	"sync"
	"testing"

	"vendshop/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestPurchaseScenario(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer@example.com", "25.00", false)
	product := env.createProduct(t, "VIP Code", "10.00", []string{"a", "b", "c"})

	result, err := env.purchases.Purchase(user.ID, product.ID, 2)
	if err != nil {
		t.Fatal("Purchase failed:", err)
	}

	if result.Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", result.Quantity)
	}
	if len(result.Purchases) != 2 {
		t.Fatalf("Expected 2 purchase rows, got %d", len(result.Purchases))
	}
	if len(result.StockData) != 2 || result.StockData[0] != "a" || result.StockData[1] != "b" {
		t.Errorf("Expected delivered units [a b], got %v", result.StockData)
	}

	for _, p := range result.Purchases {
		if p.ProductName != "VIP Code" {
			t.Errorf("Expected snapshotted product name, got %s", p.ProductName)
		}
		if !p.Price.Equal(decimal.RequireFromString("10.00")) {
			t.Errorf("Expected snapshotted unit price 10.00, got %s", p.Price)
		}
		if p.Status != model.PurchasePending {
			t.Errorf("Expected status pending, got %s", p.Status)
		}
	}

	refreshed, err := env.userRepo.FindByID(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !refreshed.Balance.Equal(decimal.RequireFromString("5.00")) {
		t.Errorf("Expected balance 5.00, got %s", refreshed.Balance)
	}

	reloaded, err := env.productRepo.FindByID(product.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Stock() != 1 || reloaded.StockData[0] != "c" {
		t.Errorf("Expected remaining stock [c], got %v", reloaded.StockData)
	}

	transactions, err := env.txRepo.FindByUser(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(transactions) != 1 {
		t.Fatalf("Expected exactly 1 transaction row, got %d", len(transactions))
	}
	tx := transactions[0]
	if tx.Type != model.TxPurchase {
		t.Errorf("Expected type purchase, got %s", tx.Type)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("Expected transaction amount 20.00, got %s", tx.Amount)
	}
}

func TestPurchaseFIFODelivery(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer@example.com", "100.00", false)
	product := env.createProduct(t, "Keys", "1.00", []string{"first", "second", "third"})

	result, err := env.purchases.Purchase(user.ID, product.ID, 1)
	if err != nil {
		t.Fatal("Purchase failed:", err)
	}
	if result.StockData[0] != "first" {
		t.Errorf("Expected oldest unit 'first', got %s", result.StockData[0])
	}

	result, err = env.purchases.Purchase(user.ID, product.ID, 1)
	if err != nil {
		t.Fatal("Purchase failed:", err)
	}
	if result.StockData[0] != "second" {
		t.Errorf("Expected next unit 'second', got %s", result.StockData[0])
	}
}

func TestPurchaseQuantityClamping(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer@example.com", "100.00", false)
	product := env.createProduct(t, "Keys", "1.00", []string{"a", "b", "c", "d"})

	// Zero, negative, and fractional quantities are clamped, never rejected
	result, err := env.purchases.Purchase(user.ID, product.ID, 0)
	if err != nil {
		t.Fatal("Purchase failed:", err)
	}
	if result.Quantity != 1 {
		t.Errorf("Expected quantity 0 clamped to 1, got %d", result.Quantity)
	}

	result, err = env.purchases.Purchase(user.ID, product.ID, -5)
	if err != nil {
		t.Fatal("Purchase failed:", err)
	}
	if result.Quantity != 1 {
		t.Errorf("Expected quantity -5 clamped to 1, got %d", result.Quantity)
	}

	result, err = env.purchases.Purchase(user.ID, product.ID, 2.7)
	if err != nil {
		t.Fatal("Purchase failed:", err)
	}
	if result.Quantity != 2 {
		t.Errorf("Expected quantity 2.7 floored to 2, got %d", result.Quantity)
	}
}

func TestPurchaseQuantityBeyondIntRange(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer@example.com", "100.00", false)
	product := env.createProduct(t, "Keys", "1.00", []string{"a", "b"})

	// A quantity too large for int must not wrap around and buy 1 unit; the
	// stock check has to see the magnitude and reject it.
	_, err := env.purchases.Purchase(user.ID, product.ID, 1e19)
	if statusOf(t, err) != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", HTTPStatus(err))
	}
	if err.Error() != "Only 2 items available" {
		t.Errorf("Unexpected message: %s", err.Error())
	}

	refreshed, _ := env.userRepo.FindByID(user.ID)
	if !refreshed.Balance.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("Balance changed on rejected purchase: %s", refreshed.Balance)
	}
	reloaded, _ := env.productRepo.FindByID(product.ID)
	if reloaded.Stock() != 2 {
		t.Errorf("Stock changed on rejected purchase: %v", reloaded.StockData)
	}
}

func TestPurchaseOutOfStock(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer@example.com", "100.00", false)
	product := env.createProduct(t, "Empty", "1.00", []string{})

	_, err := env.purchases.Purchase(user.ID, product.ID, 1)
	if statusOf(t, err) != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", HTTPStatus(err))
	}
	if err.Error() != "Product is out of stock" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestPurchaseInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer@example.com", "100.00", false)
	product := env.createProduct(t, "Scarce", "1.00", []string{"only"})

	_, err := env.purchases.Purchase(user.ID, product.ID, 3)
	if statusOf(t, err) != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", HTTPStatus(err))
	}
	if err.Error() != "Only 1 items available" {
		t.Errorf("Expected available count in message, got: %s", err.Error())
	}
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer@example.com", "5.00", false)
	product := env.createProduct(t, "Pricey", "10.00", []string{"a", "b"})

	_, err := env.purchases.Purchase(user.ID, product.ID, 1)
	if statusOf(t, err) != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", HTTPStatus(err))
	}
	if err.Error() != "Insufficient balance" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestPurchaseBannedUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "banned@example.com", "100.00", true)
	product := env.createProduct(t, "Keys", "1.00", []string{"a"})

	_, err := env.purchases.Purchase(user.ID, product.ID, 1)
	if statusOf(t, err) != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", HTTPStatus(err))
	}
}

func TestPurchaseMissingUserAndProduct(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer@example.com", "100.00", false)
	product := env.createProduct(t, "Keys", "1.00", []string{"a"})

	_, err := env.purchases.Purchase(uuid.New(), product.ID, 1)
	if statusOf(t, err) != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown user, got %d", HTTPStatus(err))
	}

	_, err = env.purchases.Purchase(user.ID, uuid.New(), 1)
	if statusOf(t, err) != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown product, got %d", HTTPStatus(err))
	}
}

func TestPurchasePreconditionFailureLeavesNoTrace(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer@example.com", "5.00", false)
	product := env.createProduct(t, "Pricey", "10.00", []string{"a", "b"})

	if _, err := env.purchases.Purchase(user.ID, product.ID, 2); err == nil {
		t.Fatal("Expected purchase to fail")
	}

	refreshed, _ := env.userRepo.FindByID(user.ID)
	if !refreshed.Balance.Equal(decimal.RequireFromString("5.00")) {
		t.Errorf("Balance changed on failed purchase: %s", refreshed.Balance)
	}

	reloaded, _ := env.productRepo.FindByID(product.ID)
	if reloaded.Stock() != 2 {
		t.Errorf("Stock changed on failed purchase: %v", reloaded.StockData)
	}

	purchases, _ := env.purchaseRepo.FindByUser(user.ID)
	if len(purchases) != 0 {
		t.Errorf("Expected no purchase rows, got %d", len(purchases))
	}
	transactions, _ := env.txRepo.FindByUser(user.ID)
	if len(transactions) != 0 {
		t.Errorf("Expected no transaction rows, got %d", len(transactions))
	}
}

func TestConcurrentPurchaseOfLastUnit(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com", "100.00", false)
	bob := env.createUser(t, "bob@example.com", "100.00", false)
	product := env.createProduct(t, "Last One", "10.00", []string{"the-unit"})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	buyers := []uuid.UUID{alice.ID, bob.ID}
	for i := range buyers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.purchases.Purchase(buyers[i], product.ID, 1)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else if err.Error() != "Product is out of stock" {
			t.Errorf("Loser saw unexpected error: %s", err.Error())
		}
	}
	if successes != 1 {
		t.Fatalf("Expected exactly 1 winner, got %d", successes)
	}

	reloaded, _ := env.productRepo.FindByID(product.ID)
	if reloaded.Stock() != 0 {
		t.Errorf("Expected stock 0, got %d", reloaded.Stock())
	}

	// Exactly one balance was debited
	debited := 0
	for _, id := range buyers {
		u, _ := env.userRepo.FindByID(id)
		if u.Balance.Equal(decimal.RequireFromString("90.00")) {
			debited++
		} else if !u.Balance.Equal(decimal.RequireFromString("100.00")) {
			t.Errorf("Unexpected balance %s", u.Balance)
		}
	}
	if debited != 1 {
		t.Errorf("Expected exactly 1 debit, got %d", debited)
	}
}

func TestNoOversellUnderConcurrency(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "Limited", "1.00", []string{"u1", "u2", "u3"})

	buyers := make([]uuid.UUID, 6)
	for i := range buyers {
		buyers[i] = env.createUser(t, string(rune('a'+i))+"@example.com", "10.00", false).ID
	}

	var wg sync.WaitGroup
	errs := make([]error, len(buyers))
	for i := range buyers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.purchases.Purchase(buyers[i], product.ID, 1)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		}
	}
	if successes != 3 {
		t.Errorf("Expected exactly 3 successful purchases, got %d", successes)
	}

	reloaded, _ := env.productRepo.FindByID(product.ID)
	if reloaded.Stock() != 0 {
		t.Errorf("Expected stock fully drained, got %v", reloaded.StockData)
	}
}
