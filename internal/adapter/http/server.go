package adapthttp

import (
	"net/http"
	"path/filepath"

	"github.com/Geovany-dotcom/Backend2/internal/app"
	"github.com/Geovany-dotcom/Backend2/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gorilla/mux"
	"golang.org/x/oauth2"
)

const sessionCookieName = "session"

// OIDCConfig enables single sign-on for administrators when populated.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth      *app.AuthService
	catalog   *app.CatalogService
	orders    *app.OrderService
	reports   *app.ReportService
	imagesDir string
	webDir    string
	oidc      OIDCConfig
}

// New creates a Server wired to the given application services. imagesDir
// holds uploaded product pictures, webDir the static login page.
func New(auth *app.AuthService, catalog *app.CatalogService, orders *app.OrderService, reports *app.ReportService, imagesDir, webDir string) *Server {
	return &Server{
		auth:      auth,
		catalog:   catalog,
		orders:    orders,
		reports:   reports,
		imagesDir: imagesDir,
		webDir:    webDir,
	}
}

// WithOIDC enables administrator single sign-on.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidc = cfg
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)

	// Public surface: login, registration, product listing, the login page
	// and uploaded images. Everything else requires a session.
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/cliente/registrar", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/productos", s.handleListProducts).Methods(http.MethodGet)
	r.HandleFunc(loginPagePath, func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(s.webDir, "CargaLogin.html"))
	}).Methods(http.MethodGet)
	r.PathPrefix("/imgs/").Handler(
		http.StripPrefix("/imgs/", http.FileServer(http.Dir(s.imagesDir)))).Methods(http.MethodGet)

	if s.oidc.Enabled {
		r.HandleFunc("/auth/sso/login", s.handleSSOLogin).Methods(http.MethodGet)
		r.HandleFunc("/auth/sso/callback", s.handleSSOCallback).Methods(http.MethodGet)
	}

	r.Handle("/logout", s.requireAuth(s.handleLogout)).Methods(http.MethodPost)
	r.Handle("/user-role", s.requireAuth(s.handleUserRole)).Methods(http.MethodGet)
	r.Handle("/user-page", s.requireRole(domain.RoleCustomer, s.handleAccessGranted)).Methods(http.MethodGet)
	r.Handle("/admin-page", s.requireRole(domain.RoleAdministrator, s.handleAccessGranted)).Methods(http.MethodGet)

	r.Handle("/productos", s.requireRole(domain.RoleAdministrator, s.handleCreateProduct)).Methods(http.MethodPost)
	r.Handle("/productos/{id}", s.requireRole(domain.RoleAdministrator, s.handleUpdateProduct)).Methods(http.MethodPut)
	r.Handle("/productos/{id}", s.requireRole(domain.RoleAdministrator, s.handleDeleteProduct)).Methods(http.MethodDelete)

	r.Handle("/comprar-producto", s.requireAuth(s.handlePurchase)).Methods(http.MethodPost)
	r.Handle("/pedido/{id}", s.requireAuth(s.handleCancelOrder)).Methods(http.MethodDelete)
	r.Handle("/mis-pedidos", s.requireAuth(s.handleMyOrders)).Methods(http.MethodGet)

	admin := domain.RoleAdministrator
	r.Handle("/pedidos", s.requireRole(admin, s.handleAllOrders)).Methods(http.MethodGet)
	r.Handle("/ventas", s.requireRole(admin, s.handleSales)).Methods(http.MethodGet)
	r.Handle("/ganancia-total", s.requireRole(admin, s.handleTotalRevenue)).Methods(http.MethodGet)
	r.Handle("/productos-mas-solicitados", s.requireRole(admin, s.handleTopProducts)).Methods(http.MethodGet)
	r.Handle("/verificar-stock", s.requireRole(admin, s.handleVerifyStock)).Methods(http.MethodGet)
	r.Handle("/datos-panel", s.requireRole(admin, s.handlePanel)).Methods(http.MethodGet)
	r.Handle("/datos-graficas", s.requireRole(admin, s.handleCharts)).Methods(http.MethodGet)
	r.Handle("/sesiones-clientes", s.requireRole(admin, s.handleClientSessions)).Methods(http.MethodGet)

	return s.loggingMiddleware(r)
}
