package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/docopt/docopt-go"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"estatehub/client/config"
	"estatehub/client/internal/api"
	"estatehub/client/internal/forms"
	"estatehub/client/internal/models"
	"estatehub/client/internal/query"
	"estatehub/client/internal/session"
	"estatehub/client/internal/store"
	"estatehub/client/internal/transport"
)

const estatehubVersion = "0.1.0"

const usage = `EstateHub listing client.

Usage:
    estatehub register --name=<name> --email=<email> --password=<password> --phone=<phone> --role=<role>
    estatehub login --email=<email> --password=<password>
    estatehub logout
    estatehub profile [--name=<name>] [--email=<email>] [--phone=<phone>] [--password=<password>]
    estatehub list [--status=<status>] [--type=<type>] [--min-price=<p>] [--max-price=<p>]
        [--bedrooms=<n>] [--bathrooms=<n>] [--city=<city>] [--furnishing=<f>] [--page=<n>]
    estatehub list --query=<querystring>
    estatehub show <id>
    estatehub featured
    estatehub nearby --lat=<lat> --lng=<lng> [--radius=<km>]
    estatehub create --file=<json>
    estatehub update <id> --file=<json>
    estatehub delete <id>
    estatehub mine
    estatehub favorite <id>
    estatehub unfavorite <id>
    estatehub agents

Options:
    -h --help              Show this screen.
    --version              Show version.
    --role=<role>          Account role: buyer or agent.
    --query=<querystring>  Restore a list view from a saved query string.
    --file=<json>          Path of a JSON file with the listing fields.
    --radius=<km>          Search radius in kilometers [default: 10].`

// app wires one session store, one credential-gated HTTP client, and one
// store per resource domain.
type app struct {
	auth     *store.AuthStore
	props    *store.PropertyStore
	sessions *session.Store
	logger   *logrus.Logger
}

func newApp(cfg *config.Config, logger *logrus.Logger) (*app, error) {
	sessions, err := session.NewStore(cfg.Client.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session storage: %w", err)
	}

	gate := transport.NewAuthTransport(nil, sessions, logger)
	httpClient := &http.Client{
		Transport: gate,
		Timeout:   time.Duration(cfg.Client.RequestTimeout) * time.Second,
	}
	client := api.NewClient(cfg.Client.APIBaseURL, httpClient, logger)

	a := &app{
		auth:     store.NewAuthStore(client, sessions, logger),
		props:    store.NewPropertyStore(client, logger),
		sessions: sessions,
		logger:   logger,
	}
	gate.OnAuthExpired = func() {
		a.auth.SessionExpired()
		fmt.Fprintln(os.Stderr, "Session expired, please log in again.")
	}
	return a, nil
}

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	opts, err := docopt.ParseArgs(usage, os.Args[1:], estatehubVersion)
	if err != nil {
		os.Exit(2)
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize client")
	}
	defer a.sessions.Close()

	ctx := context.Background()
	switch {
	case command(opts, "register"):
		a.register(ctx, opts)
	case command(opts, "login"):
		a.login(ctx, opts)
	case command(opts, "logout"):
		a.auth.Logout()
		fmt.Println("Logged out.")
	case command(opts, "profile"):
		a.profile(ctx, opts)
	case command(opts, "list"):
		a.list(ctx, opts)
	case command(opts, "show"):
		a.show(ctx, stringOpt(opts, "<id>"))
	case command(opts, "featured"):
		a.featured(ctx)
	case command(opts, "nearby"):
		a.nearby(ctx, opts)
	case command(opts, "create"):
		a.create(ctx, opts)
	case command(opts, "update"):
		a.update(ctx, opts)
	case command(opts, "delete"):
		a.delete(ctx, stringOpt(opts, "<id>"))
	case command(opts, "mine"):
		a.mine(ctx)
	case command(opts, "favorite"):
		a.favorite(ctx, stringOpt(opts, "<id>"), true)
	case command(opts, "unfavorite"):
		a.favorite(ctx, stringOpt(opts, "<id>"), false)
	case command(opts, "agents"):
		a.agents(ctx)
	}
}

func command(opts docopt.Opts, name string) bool {
	v, _ := opts.Bool(name)
	return v
}

func stringOpt(opts docopt.Opts, name string) string {
	v, _ := opts.String(name)
	return v
}

func (a *app) register(ctx context.Context, opts docopt.Opts) {
	req := api.RegisterRequest{
		Name:     stringOpt(opts, "--name"),
		Email:    stringOpt(opts, "--email"),
		Password: stringOpt(opts, "--password"),
		Phone:    stringOpt(opts, "--phone"),
		Role:     stringOpt(opts, "--role"),
	}
	if !printProblems(forms.Validate(req)) {
		return
	}
	if err := a.auth.Register(ctx, req); err != nil {
		printError(a.auth.Snapshot().Message)
		return
	}
	sess := a.auth.Snapshot().UserInfo
	fmt.Printf("Registered and logged in as %s (%s).\n", sess.Name, sess.Role)
}

func (a *app) login(ctx context.Context, opts docopt.Opts) {
	req := api.LoginRequest{
		Email:    stringOpt(opts, "--email"),
		Password: stringOpt(opts, "--password"),
	}
	if !printProblems(forms.Validate(req)) {
		return
	}
	if err := a.auth.Login(ctx, req); err != nil {
		printError(a.auth.Snapshot().Message)
		return
	}
	sess := a.auth.Snapshot().UserInfo
	fmt.Printf("Logged in as %s (%s).\n", sess.Name, sess.Role)
}

func (a *app) profile(ctx context.Context, opts docopt.Opts) {
	req := api.ProfileRequest{
		Name:     stringOpt(opts, "--name"),
		Email:    stringOpt(opts, "--email"),
		Phone:    stringOpt(opts, "--phone"),
		Password: stringOpt(opts, "--password"),
	}
	if !printProblems(forms.Validate(req)) {
		return
	}
	if err := a.auth.UpdateProfile(ctx, req); err != nil {
		printError(a.auth.Snapshot().Message)
		return
	}
	sess := a.auth.Snapshot().UserInfo
	fmt.Printf("Profile updated: %s <%s> %s\n", sess.Name, sess.Email, sess.Phone)
}

func (a *app) list(ctx context.Context, opts docopt.Opts) {
	var filters models.FilterState
	if qs := stringOpt(opts, "--query"); qs != "" {
		filters = query.Decode(qs)
	} else {
		filters = models.FilterState{
			Status:     stringOpt(opts, "--status"),
			Type:       stringOpt(opts, "--type"),
			MinPrice:   stringOpt(opts, "--min-price"),
			MaxPrice:   stringOpt(opts, "--max-price"),
			Bedrooms:   stringOpt(opts, "--bedrooms"),
			Bathrooms:  stringOpt(opts, "--bathrooms"),
			City:       stringOpt(opts, "--city"),
			Furnishing: stringOpt(opts, "--furnishing"),
		}
		if page, err := opts.Int("--page"); err == nil && page > 0 {
			filters.Page = page
		}
	}

	if err := a.props.GetProperties(ctx, filters); err != nil {
		printError(a.props.Snapshot().Message)
		return
	}

	snap := a.props.Snapshot()
	if qs := query.Encode(filters); qs != "" {
		fmt.Printf("Query: ?%s\n", qs)
	}
	if len(snap.Properties) == 0 {
		fmt.Println("No properties match these filters.")
		return
	}
	for _, p := range snap.Properties {
		printListing(p)
	}
	fmt.Printf("Page %d of %d (%d properties)\n", snap.Page, snap.Pages, snap.TotalProperties)
}

func (a *app) show(ctx context.Context, id string) {
	if err := a.props.GetProperty(ctx, id); err != nil {
		printError(a.props.Snapshot().Message)
		return
	}
	p := a.props.Snapshot().Current
	printListing(*p)
	fmt.Printf("  %s\n  %s, %s %s\n  Views: %d\n", p.Description, p.Address.Street, p.Address.State, p.Address.Zip, p.Views)
	if len(p.Amenities) > 0 {
		fmt.Printf("  Amenities: %v\n", p.Amenities)
	}
	if p.Owner.Name != "" {
		fmt.Printf("  Listed by %s (%s)\n", p.Owner.Name, p.Owner.Phone)
	}
}

func (a *app) featured(ctx context.Context) {
	if err := a.props.GetFeatured(ctx); err != nil {
		printError(a.props.Snapshot().Message)
		return
	}
	snap := a.props.Snapshot()
	if len(snap.Featured) == 0 {
		fmt.Println("No featured properties right now.")
		return
	}
	for _, p := range snap.Featured {
		printListing(p)
	}
}

func (a *app) nearby(ctx context.Context, opts docopt.Opts) {
	lat, latErr := opts.Float64("--lat")
	lng, lngErr := opts.Float64("--lng")
	if latErr != nil || lngErr != nil {
		printError("nearby requires numeric --lat and --lng")
		return
	}
	radius, err := opts.Float64("--radius")
	if err != nil || radius <= 0 {
		radius = 10
	}

	if err := a.props.GetNearby(ctx, lat, lng, radius); err != nil {
		printError(a.props.Snapshot().Message)
		return
	}
	snap := a.props.Snapshot()
	if len(snap.Nearby) == 0 {
		fmt.Printf("Nothing within %.0f km.\n", radius)
		return
	}
	for _, p := range snap.Nearby {
		printListing(p)
	}
}

func (a *app) create(ctx context.Context, opts docopt.Opts) {
	req, ok := loadListingFile(stringOpt(opts, "--file"))
	if !ok {
		return
	}
	if err := a.props.Create(ctx, req); err != nil {
		printError(a.props.Snapshot().Message)
		return
	}
	created := a.props.Snapshot().Properties[0]
	fmt.Printf("Created listing %s (%s)\n", created.ID, created.Title)
}

func (a *app) update(ctx context.Context, opts docopt.Opts) {
	req, ok := loadListingFile(stringOpt(opts, "--file"))
	if !ok {
		return
	}
	id := stringOpt(opts, "<id>")
	if err := a.props.Update(ctx, id, req); err != nil {
		printError(a.props.Snapshot().Message)
		return
	}
	fmt.Printf("Updated listing %s\n", id)
}

func (a *app) delete(ctx context.Context, id string) {
	if err := a.props.Delete(ctx, id); err != nil {
		printError(a.props.Snapshot().Message)
		return
	}
	a.props.ResetCurrent()
	fmt.Printf("Deleted listing %s\n", id)
}

func (a *app) mine(ctx context.Context) {
	if err := a.props.GetUserProperties(ctx); err != nil {
		printError(a.props.Snapshot().Message)
		return
	}
	snap := a.props.Snapshot()
	if len(snap.Properties) == 0 {
		fmt.Println("You have no listings yet.")
		return
	}
	for _, p := range snap.Properties {
		printListing(p)
	}
}

func (a *app) favorite(ctx context.Context, id string, add bool) {
	var err error
	if add {
		err = a.auth.AddFavorite(ctx, id)
	} else {
		err = a.auth.RemoveFavorite(ctx, id)
	}
	if err != nil {
		printError(a.auth.Snapshot().Message)
		return
	}
	sess := a.auth.Snapshot().UserInfo
	if sess != nil {
		fmt.Printf("Favorites: %v\n", sess.Favorites)
	}
}

func (a *app) agents(ctx context.Context) {
	if err := a.auth.GetAgents(ctx); err != nil {
		printError(a.auth.Snapshot().Message)
		return
	}
	snap := a.auth.Snapshot()
	if len(snap.Agents) == 0 {
		fmt.Println("No agents registered.")
		return
	}
	for _, agent := range snap.Agents {
		fmt.Printf("%-24s %-28s %s\n", agent.Name, agent.Email, agent.Phone)
	}
}

func loadListingFile(path string) (api.PropertyRequest, bool) {
	var req api.PropertyRequest
	data, err := os.ReadFile(path)
	if err != nil {
		printError(fmt.Sprintf("cannot read %s: %v", path, err))
		return req, false
	}
	if err := json.Unmarshal(data, &req); err != nil {
		printError(fmt.Sprintf("invalid listing JSON: %v", err))
		return req, false
	}
	return req, printProblems(forms.Validate(req))
}

func printListing(p models.Property) {
	fmt.Printf("%-36s %-10s %-9s %12.0f  %s, %s\n",
		p.ID, p.Type, p.Status, p.Price, p.Title, p.Address.City)
}

// printProblems reports field validation problems and returns true when
// there were none.
func printProblems(problems map[string]string) bool {
	if problems == nil {
		return true
	}
	for field, msg := range problems {
		fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
	}
	return false
}

func printError(message string) {
	if message == "" {
		message = "request failed"
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	os.Exit(1)
}
