package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"docuflow/internal/config"
	"docuflow/internal/domain"
	"docuflow/internal/notify"
	"docuflow/internal/view"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	toast := notify.NewToast(os.Stderr)
	container := config.NewContainer(toast)
	defer container.Close()

	if err := run(container, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// navigator is the terminal stand-in for route changes: a screen switch in
// the browser becomes a hint about the next command here.
type navigator struct {
	logger domain.Logger
}

func (n *navigator) Navigate(route string) {
	n.logger.Debug("Navigating", "route", route)
	switch route {
	case domain.RouteDashboard:
		fmt.Println("You are logged in. Run 'docuflow list' to browse documents.")
	case domain.RouteLogin:
		fmt.Println("Run 'docuflow login' to sign in.")
	}
}

func run(c *config.Container, args []string) error {
	if len(args) == 0 {
		usage()
		return nil
	}
	ctx := context.Background()
	nav := &navigator{logger: c.Logger}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		return runLogin(ctx, c, nav, rest)
	case "register":
		return runRegister(ctx, c, nav, rest)
	case "logout":
		if err := c.Auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return runWhoami(c)
	case "list":
		return runList(ctx, c, rest)
	case "users":
		return runUsers(ctx, c, rest)
	case "show":
		return runShow(ctx, c, nav, rest)
	case "upload":
		return runUpload(ctx, c, rest)
	case "rename", "delete", "send-to-review", "revoke-review", "change-status":
		return runDocumentAction(ctx, c, nav, cmd, rest)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Println(`docuflow - document review client

Usage:
  docuflow login -email <email> -password <password>
  docuflow register -name <full name> -email <email> -password <password> [-role USER|REVIEWER]
  docuflow logout
  docuflow whoami
  docuflow list [-page N] [-size N] [-status S] [-creator ID] [-creator-email E] [-sort field,direction]
  docuflow users [-page N] [-size N]
  docuflow show <id>
  docuflow upload -name <name> -file <path> [-status DRAFT|READY_FOR_REVIEW]
  docuflow rename <id> -name <new name>
  docuflow delete <id>
  docuflow send-to-review <id>
  docuflow revoke-review <id>
  docuflow change-status <id> -status UNDER_REVIEW|APPROVED|DECLINED`)
}

func requireAuth(c *config.Container) error {
	if !c.Auth.IsAuthenticated() {
		return fmt.Errorf("%w: run 'docuflow login' first", domain.ErrNotAuthenticated)
	}
	return nil
}

func runLogin(ctx context.Context, c *config.Container, nav domain.Navigator, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	page := view.NewLoginPage(c.Auth, nav)
	page.Submit(ctx, *email, *password)
	if msg := page.ErrorMessage(); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	if !c.Auth.IsAuthenticated() {
		return fmt.Errorf("email and password are required")
	}
	return nil
}

func runRegister(ctx context.Context, c *config.Container, nav domain.Navigator, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", string(domain.RoleUser), "account role")
	fs.Parse(args)

	page := view.NewRegisterPage(c.Auth, nav, c.Notifier)
	page.Submit(ctx, domain.RegisterPayload{
		FullName: *name,
		Email:    *email,
		Password: *password,
		Role:     domain.Role(*role),
	})
	return nil
}

func runWhoami(c *config.Container) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	user := c.Users.User()
	if user == nil {
		return domain.ErrUserNotFound
	}
	fmt.Printf("%s <%s> (%s)\n", user.FullName, user.Email, user.Role)
	return nil
}

func runList(ctx context.Context, c *config.Container, args []string) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	page := fs.Int("page", view.DefaultPage, "1-based page")
	size := fs.Int("size", view.DefaultPageSize, "page size")
	status := fs.String("status", "", "status filter")
	creator := fs.String("creator", "", "creator id filter")
	creatorEmail := fs.String("creator-email", "", "creator email filter")
	sortSpec := fs.String("sort", "", "sort as field,direction")
	fs.Parse(args)

	dashboard := view.NewDashboardView(c.API, c.Users, c.Users, c.Logger)
	dashboard.Restore(*page, *size, domain.DocumentStatus(*status), *creator, *creatorEmail)

	if *sortSpec != "" {
		parts := strings.SplitN(*sortSpec, ",", 2)
		direction := "asc"
		if len(parts) == 2 {
			direction = parts[1]
		}
		dashboard.OnSortChange(ctx, parts[0], direction)
	} else {
		dashboard.LoadDocuments(ctx)
	}

	printDocuments(dashboard.Documents())
	fmt.Printf("page %d: showing %d of %d documents\n", dashboard.Page(), len(dashboard.Documents()), dashboard.Total())
	return nil
}

func runUsers(ctx context.Context, c *config.Container, args []string) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	page := fs.Int("page", view.DefaultPage, "1-based page")
	size := fs.Int("size", view.DefaultUsersPageSize, "page size")
	fs.Parse(args)

	users, err := c.Users.ListUsers(ctx, *page, *size)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.FullName, u.Role)
	}
	return w.Flush()
}

func runShow(ctx context.Context, c *config.Container, nav domain.Navigator, args []string) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("show requires a document id")
	}
	docView := view.NewDocumentView(args[0], c.API, c.Users, c.Notifier, nav, c.Logger)
	docView.Load(ctx)
	doc := docView.Document()
	if doc == nil {
		return domain.ErrDocumentNotFound
	}

	fmt.Printf("Name:     %s\n", doc.Name)
	fmt.Printf("Status:   %s\n", doc.Status)
	fmt.Printf("Creator:  %s <%s>\n", doc.Creator.FullName, doc.Creator.Email)
	fmt.Printf("File:     %s\n", doc.FileURL)
	fmt.Printf("Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Updated:  %s\n", doc.UpdatedAt.Format("2006-01-02 15:04"))

	var actions []string
	if docView.CanSendToReview() {
		actions = append(actions, "send-to-review")
	}
	if docView.CanRevoke() {
		actions = append(actions, "revoke-review")
	}
	if docView.CanDelete() {
		actions = append(actions, "delete")
	}
	if c.Users.IsReviewer() {
		actions = append(actions, "change-status")
	}
	if len(actions) > 0 {
		fmt.Printf("Actions:  %s\n", strings.Join(actions, ", "))
	}
	return nil
}

func runUpload(ctx context.Context, c *config.Container, args []string) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	name := fs.String("name", "", "document name")
	path := fs.String("file", "", "file to upload")
	status := fs.String("status", string(domain.StatusDraft), "initial status")
	fs.Parse(args)

	if *path == "" {
		return fmt.Errorf("upload requires -file")
	}
	file, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer file.Close()

	uploaded := false
	dialog := view.NewUploadDialog(c.API, c.Notifier, c.Logger, func(refresh bool) {
		uploaded = refresh
	})
	dialog.SetName(*name)
	dialog.SetStatus(domain.DocumentStatus(*status))
	dialog.OnFileSelected(file.Name(), file)
	dialog.Submit(ctx)

	if !uploaded {
		return fmt.Errorf("upload did not complete")
	}
	return nil
}

func runDocumentAction(ctx context.Context, c *config.Container, nav domain.Navigator, cmd string, args []string) error {
	if err := requireAuth(c); err != nil {
		return err
	}
	if len(args) < 1 {
		return fmt.Errorf("%s requires a document id", cmd)
	}
	id := args[0]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	name := fs.String("name", "", "new document name")
	status := fs.String("status", "", "review status")
	fs.Parse(args[1:])

	docView := view.NewDocumentView(id, c.API, c.Users, c.Notifier, nav, c.Logger)
	docView.Load(ctx)
	if docView.Document() == nil {
		return domain.ErrDocumentNotFound
	}

	switch cmd {
	case "rename":
		if *name == "" {
			return fmt.Errorf("rename requires -name")
		}
		docView.OnNameChange(*name)
		docView.SaveName(ctx)
	case "delete":
		docView.Delete(ctx)
	case "send-to-review":
		docView.SendToReview(ctx)
	case "revoke-review":
		docView.Revoke(ctx)
	case "change-status":
		if *status == "" {
			return fmt.Errorf("change-status requires -status")
		}
		docView.ChangeStatus(ctx, domain.DocumentStatus(*status))
	}
	return nil
}

func printDocuments(docs []domain.Document) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tCREATOR\tUPDATED")
	for _, d := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Name, d.Status, d.Creator.Email, d.UpdatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}
