package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/verso-ui/verso/internal/errors"
)

func newCmd() *cobra.Command {
	var (
		baseURL string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new Verso project",
		Long: `Create a new Verso project with the specified name.

The generated project serves a small page tree behind a chi router and
is ready for 'go run .' after 'go mod tidy'.

Examples:
  verso new my-app
  verso new my-app --port 3000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(args[0], baseURL, port)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "App base URL (default http://localhost:<port>)")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Server port")

	return cmd
}

var projectNameRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

func runNew(name, baseURL string, port int) error {
	printBanner()
	fmt.Println("  Creating a new Verso project...")
	fmt.Println()

	if !projectNameRe.MatchString(name) {
		return errors.New("E301").
			WithDetail("got %q", name)
	}

	projectDir, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(projectDir); !os.IsNotExist(err) {
		return errors.New("E300").
			WithDetail("directory %q already exists", name)
	}

	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", port)
	}

	info("Creating project directory...")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return err
	}

	data := scaffoldData{
		Name:    name,
		BaseURL: baseURL,
		Port:    port,
	}
	for file, tmpl := range scaffoldFiles {
		if err := writeScaffold(filepath.Join(projectDir, file), tmpl, data); err != nil {
			os.RemoveAll(projectDir)
			return err
		}
	}

	fmt.Println()
	success("Created %s/", name)
	info("Next steps:")
	info("  cd %s", name)
	info("  go mod tidy")
	info("  go run .")
	return nil
}

type scaffoldData struct {
	Name    string
	BaseURL string
	Port    int
}

func writeScaffold(path, tmpl string, data scaffoldData) error {
	t, err := template.New(filepath.Base(path)).Parse(tmpl)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Execute(f, data)
}

// scaffoldFiles maps output filenames to their templates.
var scaffoldFiles = map[string]string{
	"go.mod": `module {{.Name}}

go 1.23

require (
	github.com/go-chi/chi/v5 v5.2.3
	github.com/verso-ui/verso v0.1.0
)
`,

	"verso.json": `{
  "name": "{{.Name}}",
  "baseUrl": "{{.BaseURL}}",
  "server": {
    "port": {{.Port}}
  }
}
`,

	"main.go": `package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/verso-ui/verso"
)

func main() {
	app, err := verso.New(verso.Config{
		BaseURL: "{{.BaseURL}}",
		Pages:   pages(),
	})
	if err != nil {
		log.Fatal(err)
	}

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Mount("/", app)

	log.Printf("listening on :{{.Port}}")
	log.Fatal(http.ListenAndServe(":{{.Port}}", r))
}
`,

	"pages.go": `package main

import "github.com/verso-ui/verso"

func pages() []verso.Node {
	return []verso.Node{
		&verso.Page{
			Name:    "Home",
			Segment: "",
			Build:   func(verso.Params) any { return "Welcome to {{.Name}}" },
		},
		&verso.Page{
			Name:    "About",
			Segment: "about",
			Build:   func(verso.Params) any { return "About {{.Name}}" },
		},
		&verso.Redirect{Segment: "home", Target: "/"},
	}
}
`,
}
