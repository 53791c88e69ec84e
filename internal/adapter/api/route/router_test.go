package route

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/memory"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/account"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/catalog"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/intake"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/ledger"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/settlement"
	tillsvc "github.com/hugohenrick/pdv-conveniencia/internal/service/till"
	"github.com/hugohenrick/pdv-conveniencia/pkg/auth"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

const (
	operatorID      = "8c6d1f4e-2b7a-4c1e-9f3d-5a2b7c9e1d40"
	otherOperatorID = "0f2e7a91-5c3b-4d6e-8a1f-2b9c4d7e6a15"
	sellerID        = "d3a5b7c9-1e2f-4a6b-8c0d-9e8f7a6b5c4d"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestAPI(t *testing.T, authRequired bool) *testAPI {
	t.Helper()
	store := memory.NewStore()
	log := logger.NewNopLogger()
	jwtService, err := auth.NewJWTService("segredo-de-teste", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	cat := catalog.NewService(store, store.Products(), store.Categories(), log, 30)
	led := ledger.NewService(store, store.Customers(), store.Receivables(), log, 30)
	tills := tillsvc.NewService(store, store.Tills(), log, time.UTC)
	eng := settlement.NewEngine(store, store.Tills(), store.Products(), store.Customers(), store.Sales(), cat, led, log, time.UTC)
	purchases := intake.NewEngine(store, store.Purchases(), store.Suppliers(), store.Products(), cat, log, time.UTC)
	accounts := account.NewService(store, store.Users(), jwtService, log)

	router := gin.New()
	Setup(router, "/api/v1", Controllers{
		Auth:       controller.NewAuthController(accounts, log),
		User:       controller.NewUserController(accounts, log),
		Product:    controller.NewProductController(cat, log),
		Category:   controller.NewCategoryController(cat, log),
		Customer:   controller.NewCustomerController(led, log),
		Receivable: controller.NewReceivableController(led, log),
		Till:       controller.NewTillController(tills, log),
		Sale:       controller.NewSaleController(eng, log),
		Purchase:   controller.NewPurchaseController(purchases, log),
		Supplier:   controller.NewSupplierController(purchases, log),
		Health:     controller.NewHealthController(nil, "memory", log),
	}, Guard{JWT: jwtService, Required: authRequired})

	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path string, body interface{}) (int, map[string]interface{}) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			a.t.Fatalf("%s %s: resposta inválida %q", method, path, w.Body.String())
		}
	}
	return w.Code, out
}

func (a *testAPI) mustDo(method, path string, body interface{}, wantStatus int) map[string]interface{} {
	a.t.Helper()
	status, out := a.do(method, path, body)
	if status != wantStatus {
		a.t.Fatalf("%s %s status = %d, want %d (%v)", method, path, status, wantStatus, out)
	}
	return out
}

func (a *testAPI) list(path string) []map[string]interface{} {
	a.t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1"+path, nil)
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		a.t.Fatalf("GET %s status = %d (%s)", path, w.Code, w.Body.String())
	}
	var out []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		a.t.Fatalf("GET %s: resposta inválida %q", path, w.Body.String())
	}
	return out
}

func TestSaleLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t, false)

	status, body := api.do(http.MethodGet, "/tills/current", nil)
	if status != http.StatusNotFound || body["kind"] != "NoOpenTill" {
		t.Fatalf("GET /tills/current sem caixa = %d %v", status, body)
	}

	prod := api.mustDo(http.MethodPost, "/products", map[string]interface{}{
		"code": "789001", "name": "Refrigerante", "sell_price": "12.50", "stock": 10,
	}, http.StatusCreated)
	productID := prod["id"].(string)

	sale := map[string]interface{}{
		"items":     []map[string]interface{}{{"product_id": productID, "quantity": 2}},
		"tenders":   []map[string]interface{}{{"method": "cash", "amount": "30.00"}},
		"seller_id": sellerID,
	}

	status, body = api.do(http.MethodPost, "/sales", sale)
	if status != http.StatusConflict || body["kind"] != "NoOpenTill" {
		t.Fatalf("venda sem caixa = %d %v", status, body)
	}

	opened := api.mustDo(http.MethodPost, "/tills", map[string]interface{}{"opening_float": "100.00", "operator_id": operatorID}, http.StatusCreated)
	tillID := opened["till_id"].(string)

	status, body = api.do(http.MethodPost, "/tills", map[string]interface{}{"opening_float": "10.00", "operator_id": otherOperatorID})
	if status != http.StatusConflict || body["kind"] != "TillAlreadyOpen" {
		t.Fatalf("segundo caixa = %d %v", status, body)
	}

	short := map[string]interface{}{
		"items":     sale["items"],
		"tenders":   []map[string]interface{}{{"method": "cash", "amount": "20.00"}},
		"seller_id": sellerID,
	}
	status, body = api.do(http.MethodPost, "/sales", short)
	if status != http.StatusUnprocessableEntity || body["kind"] != "InsufficientPayment" {
		t.Fatalf("pagamento insuficiente = %d %v", status, body)
	}

	settled := api.mustDo(http.MethodPost, "/sales", sale, http.StatusCreated)
	if settled["net_total"] != "25.00" || settled["change"] != "5.00" {
		t.Errorf("venda = %v", settled)
	}

	got := api.mustDo(http.MethodGet, "/products/"+productID, nil, http.StatusOK)
	if got["stock"].(float64) != 8 {
		t.Errorf("estoque = %v, want 8", got["stock"])
	}

	summary := api.mustDo(http.MethodGet, "/tills/"+tillID+"/summary", nil, http.StatusOK)
	if summary["net"] != "25.00" || summary["sales_count"].(float64) != 1 {
		t.Errorf("resumo = %v", summary)
	}

	closed := api.mustDo(http.MethodPost, "/tills/"+tillID+"/close", map[string]interface{}{"counted_amount": "120.00"}, http.StatusOK)
	if closed["closing_total"] != "125.00" || closed["difference"] != "-5.00" {
		t.Errorf("fechamento = %v", closed)
	}

	status, body = api.do(http.MethodPost, "/tills/"+tillID+"/close", nil)
	if status != http.StatusConflict || body["kind"] != "AlreadyClosed" {
		t.Errorf("segundo fechamento = %d %v", status, body)
	}

	list := api.mustDo(http.MethodGet, "/sales?till_id="+tillID+"&period=today", nil, http.StatusOK)
	if list["total_count"].(float64) != 1 {
		t.Errorf("vendas do caixa = %v", list)
	}

	status, _ = api.do(http.MethodGet, "/sales?period=semana", nil)
	if status != http.StatusBadRequest {
		t.Errorf("período inválido status = %d", status)
	}
}

func TestStoreCreditOverHTTP(t *testing.T) {
	api := newTestAPI(t, false)

	prod := api.mustDo(http.MethodPost, "/products", map[string]interface{}{
		"code": "1", "name": "Cesta", "sell_price": "60.00", "stock": 5,
	}, http.StatusCreated)
	cust := api.mustDo(http.MethodPost, "/customers", map[string]interface{}{
		"name": "Maria", "document": "123", "credit_limit": "100.00",
	}, http.StatusCreated)
	customerID := cust["id"].(string)

	status, body := api.do(http.MethodPost, "/customers", map[string]interface{}{"name": "Outra", "document": "123"})
	if status != http.StatusConflict || body["kind"] != "DuplicateTaxId" {
		t.Fatalf("documento duplicado = %d %v", status, body)
	}

	api.mustDo(http.MethodPost, "/tills", map[string]interface{}{"opening_float": "0", "operator_id": operatorID}, http.StatusCreated)

	sale := func(credit string) map[string]interface{} {
		return map[string]interface{}{
			"items": []map[string]interface{}{{"product_id": prod["id"], "quantity": 1}},
			"tenders": []map[string]interface{}{
				{"method": "cash", "amount": "10.00"},
				{"method": "store_credit", "amount": credit},
			},
			"seller_id":   sellerID,
			"customer_id": customerID,
		}
	}

	api.mustDo(http.MethodPost, "/sales", sale("50.00"), http.StatusCreated)

	credit := api.mustDo(http.MethodGet, "/customers/"+customerID+"/credit", nil, http.StatusOK)
	if credit["available"] != "50.00" || credit["total_owed"] != "50.00" {
		t.Errorf("crédito = %v", credit)
	}

	status, body = api.do(http.MethodPost, "/sales", map[string]interface{}{
		"items":       []map[string]interface{}{{"product_id": prod["id"], "quantity": 1}},
		"tenders":     []map[string]interface{}{{"method": "store_credit", "amount": "60.00"}},
		"seller_id":   sellerID,
		"customer_id": customerID,
	})
	if status != http.StatusUnprocessableEntity || body["kind"] != "CreditLimitExceeded" {
		t.Fatalf("limite excedido = %d %v", status, body)
	}

	paid := api.mustDo(http.MethodPost, "/customers/"+customerID+"/payments", map[string]interface{}{"amount": "70.00", "method": "pix"}, http.StatusCreated)
	if paid["leftover"] != "20.00" || len(paid["payment_ids"].([]interface{})) != 1 {
		t.Errorf("pagamento FIFO = %v", paid)
	}

	status, body = api.do(http.MethodPost, "/customers/"+customerID+"/payments", map[string]interface{}{"amount": "10.00", "method": "pix"})
	if status != http.StatusConflict || body["kind"] != "NoPendingReceivables" {
		t.Errorf("sem contas = %d %v", status, body)
	}
}

func TestAuthFlowOverHTTP(t *testing.T) {
	api := newTestAPI(t, true)

	status, body := api.do(http.MethodGet, "/tills/current", nil)
	if status != http.StatusUnauthorized || body["kind"] != "Unauthorized" {
		t.Fatalf("sem token = %d %v", status, body)
	}

	api.mustDo(http.MethodPost, "/setup/admin", map[string]interface{}{
		"name": "Dona", "email": "dona@loja.com", "password": "segredo1",
	}, http.StatusCreated)
	status, _ = api.do(http.MethodPost, "/setup/admin", map[string]interface{}{
		"name": "Outro", "email": "outro@loja.com", "password": "segredo1",
	})
	if status != http.StatusBadRequest {
		t.Errorf("segundo setup status = %d", status)
	}

	status, _ = api.do(http.MethodPost, "/auth/login", map[string]interface{}{"email": "dona@loja.com", "password": "errada"})
	if status != http.StatusUnauthorized {
		t.Errorf("senha errada status = %d", status)
	}

	login := api.mustDo(http.MethodPost, "/auth/login", map[string]interface{}{"email": "dona@loja.com", "password": "segredo1"}, http.StatusOK)
	api.token = login["access_token"].(string)

	me := api.mustDo(http.MethodGet, "/auth/me", nil, http.StatusOK)
	if me["email"] != "dona@loja.com" || me["role"] != "admin" {
		t.Errorf("me = %v", me)
	}

	api.mustDo(http.MethodPost, "/users", map[string]interface{}{
		"name": "Caixa", "email": "caixa@loja.com", "password": "senha123", "role": "cashier",
	}, http.StatusCreated)

	// Sem operator_id o caixa é aberto em nome do usuário autenticado
	opened := api.mustDo(http.MethodPost, "/tills", map[string]interface{}{"opening_float": "50.00"}, http.StatusCreated)
	if opened["operator_id"] != me["id"] {
		t.Errorf("operador = %v, want %v", opened["operator_id"], me["id"])
	}

	cashier := api.mustDo(http.MethodPost, "/auth/login", map[string]interface{}{"email": "caixa@loja.com", "password": "senha123"}, http.StatusOK)
	api.token = cashier["access_token"].(string)

	status, _ = api.do(http.MethodGet, "/users", nil)
	if status != http.StatusForbidden {
		t.Errorf("caixa listando usuários status = %d, want 403", status)
	}
	api.mustDo(http.MethodGet, "/tills/current", nil, http.StatusOK)
}

func TestSubCentAmountsOverHTTP(t *testing.T) {
	api := newTestAPI(t, false)

	status, body := api.do(http.MethodPost, "/tills", map[string]interface{}{"opening_float": "0.001", "operator_id": operatorID})
	if status != http.StatusBadRequest || body["kind"] != "ValidationError" {
		t.Fatalf("valor inicial com fração de centavo = %d %v", status, body)
	}

	prod := api.mustDo(http.MethodPost, "/products", map[string]interface{}{
		"code": "55", "name": "Pão de queijo", "sell_price": "10.00", "stock": 5,
	}, http.StatusCreated)
	cust := api.mustDo(http.MethodPost, "/customers", map[string]interface{}{
		"name": "João", "document": "987", "credit_limit": "50.00",
	}, http.StatusCreated)
	customerID := cust["id"].(string)
	api.mustDo(http.MethodPost, "/tills", map[string]interface{}{"opening_float": "0", "operator_id": operatorID}, http.StatusCreated)

	sale := func(tender, discount string) map[string]interface{} {
		return map[string]interface{}{
			"items":       []map[string]interface{}{{"product_id": prod["id"], "quantity": 1}},
			"tenders":     []map[string]interface{}{{"method": "store_credit", "amount": tender}},
			"discount":    discount,
			"seller_id":   sellerID,
			"customer_id": customerID,
		}
	}

	for _, tc := range []struct{ tender, discount string }{{"10.005", "0"}, {"10.00", "0.001"}} {
		status, body = api.do(http.MethodPost, "/sales", sale(tc.tender, tc.discount))
		if status != http.StatusBadRequest || body["kind"] != "ValidationError" {
			t.Errorf("venda tender=%s desconto=%s = %d %v", tc.tender, tc.discount, status, body)
		}
	}

	api.mustDo(http.MethodPost, "/sales", sale("10.00", "0"), http.StatusCreated)
	receivables := api.list("/customers/" + customerID + "/receivables")
	if len(receivables) != 1 {
		t.Fatalf("contas = %v", receivables)
	}
	receivableID := receivables[0]["id"].(string)

	status, body = api.do(http.MethodPost, "/receivables/"+receivableID+"/payments", map[string]interface{}{"amount": "9.999", "method": "cash"})
	if status != http.StatusBadRequest || body["kind"] != "ValidationError" {
		t.Fatalf("pagamento com fração de centavo = %d %v", status, body)
	}
	status, _ = api.do(http.MethodPost, "/customers/"+customerID+"/payments", map[string]interface{}{"amount": "9.999", "method": "cash"})
	if status != http.StatusBadRequest {
		t.Errorf("pagamento FIFO com fração de centavo status = %d", status)
	}

	rec := api.mustDo(http.MethodGet, "/receivables/"+receivableID, nil, http.StatusOK)
	if rec["status"] != "pending" || rec["outstanding"] != "10.00" {
		t.Errorf("conta após recusa = %v", rec)
	}

	api.mustDo(http.MethodPost, "/receivables/"+receivableID+"/payments", map[string]interface{}{"amount": "10.00", "method": "cash"}, http.StatusCreated)
	rec = api.mustDo(http.MethodGet, "/receivables/"+receivableID, nil, http.StatusOK)
	if rec["status"] != "paid" || rec["paid_at"] == nil {
		t.Errorf("conta quitada = %v", rec)
	}
}

func TestMalformedIDsOverHTTP(t *testing.T) {
	api := newTestAPI(t, false)

	notFound := []struct {
		method, path, kind string
	}{
		{http.MethodGet, "/tills/abc", "NotFound"},
		{http.MethodPost, "/tills/abc/close", "NotFound"},
		{http.MethodGet, "/customers/abc", "CustomerNotFound"},
		{http.MethodGet, "/products/abc", "NotFound"},
		{http.MethodGet, "/receivables/abc", "NotFound"},
		{http.MethodGet, "/sales/abc", "NotFound"},
	}
	for _, tc := range notFound {
		status, body := api.do(tc.method, tc.path, nil)
		if status != http.StatusNotFound || body["kind"] != tc.kind {
			t.Errorf("%s %s = %d %v, want 404 %s", tc.method, tc.path, status, body, tc.kind)
		}
	}

	status, body := api.do(http.MethodPost, "/tills", map[string]interface{}{"opening_float": "10.00", "operator_id": "op-1"})
	if status != http.StatusBadRequest || body["kind"] != "ValidationError" {
		t.Errorf("operador inválido = %d %v", status, body)
	}

	api.mustDo(http.MethodPost, "/tills", map[string]interface{}{"opening_float": "10.00", "operator_id": operatorID}, http.StatusCreated)

	badSales := []map[string]interface{}{
		{
			"items":     []map[string]interface{}{{"product_id": "x", "quantity": 1}},
			"tenders":   []map[string]interface{}{{"method": "cash", "amount": "5.00"}},
			"seller_id": sellerID,
		},
		{
			"items":     []map[string]interface{}{{"product_id": operatorID, "quantity": 1}},
			"tenders":   []map[string]interface{}{{"method": "cash", "amount": "5.00"}},
			"seller_id": "vendedor",
		},
	}
	for i, req := range badSales {
		status, body = api.do(http.MethodPost, "/sales", req)
		if status != http.StatusBadRequest || body["kind"] != "ValidationError" {
			t.Errorf("venda %d com id inválido = %d %v", i, status, body)
		}
	}
}

func TestCancelledRequestDoesNotWrite(t *testing.T) {
	api := newTestAPI(t, false)

	prod := api.mustDo(http.MethodPost, "/products", map[string]interface{}{
		"code": "77", "name": "Água", "sell_price": "3.00", "stock": 4,
	}, http.StatusCreated)
	productID := prod["id"].(string)
	api.mustDo(http.MethodPost, "/tills", map[string]interface{}{"opening_float": "0", "operator_id": operatorID}, http.StatusCreated)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw, err := json.Marshal(map[string]interface{}{
		"items":     []map[string]interface{}{{"product_id": productID, "quantity": 2}},
		"tenders":   []map[string]interface{}{{"method": "cash", "amount": "6.00"}},
		"seller_id": sellerID,
	})
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewReader(raw)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	if w.Code == http.StatusCreated {
		t.Fatalf("requisição cancelada fechou a venda: %s", w.Body.String())
	}
	got := api.mustDo(http.MethodGet, "/products/"+productID, nil, http.StatusOK)
	if got["stock"].(float64) != 4 {
		t.Errorf("estoque = %v, want 4", got["stock"])
	}
	list := api.mustDo(http.MethodGet, "/sales", nil, http.StatusOK)
	if list["total_count"].(float64) != 0 {
		t.Errorf("vendas = %v, want nenhuma", list)
	}
}
