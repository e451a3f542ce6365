// schemactl is an interactive client for the schema processing server.
// It drives the same form component the web UI uses: pick a schema
// file, type queries, tune the threshold, and export results.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/schema-scout/backend/internal/form"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "server base URL")
	schemaPath := flag.String("schema", "", "path to a schema file (.json/.yaml/.yml)")
	format := flag.String("format", "json", "output format: json or yaml")
	threshold := flag.Float64("threshold", form.DefaultThreshold, "relevance threshold in [0,1]")
	exportDir := flag.String("export-dir", ".", "directory for exported results")
	mock := flag.Bool("mock", false, "use the mock processing path instead of a server")
	flag.Parse()

	store := form.NewStore()
	store.SetOutputFormat(form.OutputFormat(*format))
	store.SetThreshold(*threshold)

	if *schemaPath != "" {
		if err := store.SetFileFromPath(*schemaPath); err != nil {
			fmt.Printf("Failed to load schema: %v\n", err)
			os.Exit(1)
		}
	}

	var submitter form.Submitter
	if *mock {
		submitter = &form.MockSubmitter{}
	} else {
		submitter = form.NewHTTPSubmitter(*serverURL)
	}
	controller := form.NewController(store, submitter)
	saver := form.DirSaver{Dir: *exportDir}

	fmt.Println("Schema Scout")
	fmt.Println("Enter queries to find relevant tables. Commands: :file <path>, :format <json|yaml>, :threshold <v>, :export, :quit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Query: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			fmt.Println("Please enter a query")
			continue
		case line == ":quit" || line == "quit":
			return
		case strings.HasPrefix(line, ":file "):
			if err := store.SetFileFromPath(strings.TrimSpace(strings.TrimPrefix(line, ":file "))); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			continue
		case strings.HasPrefix(line, ":format "):
			store.SetOutputFormat(form.OutputFormat(strings.TrimSpace(strings.TrimPrefix(line, ":format "))))
			continue
		case strings.HasPrefix(line, ":threshold "):
			v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, ":threshold ")), 64)
			if err != nil {
				fmt.Println("Invalid threshold")
				continue
			}
			store.SetThreshold(v)
			continue
		case line == ":export":
			st := store.State()
			if st.Result == nil {
				fmt.Println("Nothing to export yet")
				continue
			}
			if err := form.Export(st.Result, st.OutputFormat, saver); err != nil {
				fmt.Printf("Export failed: %v\n", err)
			} else {
				fmt.Printf("Saved %s\n", form.Filename(st.OutputFormat))
			}
			continue
		}

		store.SetQuery(line)

		if store.State().Loading {
			// Mirrors the disabled submit button.
			fmt.Println("A submission is already in flight")
			continue
		}

		final := <-controller.Submit(context.Background())

		if final.Err != "" {
			fmt.Printf("Error: %s\n", final.Err)
			continue
		}

		printResult(final)
	}
}

func printResult(st form.State) {
	names := make([]string, 0, len(st.Result))
	for name := range st.Result {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return st.Result[names[i]].RelevanceScore > st.Result[names[j]].RelevanceScore
	})

	fmt.Println("\nRelevant tables:")
	for _, name := range names {
		match := st.Result[name]
		fmt.Printf("\n- %s (relevance: %.2f)\n", name, match.RelevanceScore)
		fmt.Println("  Columns:")
		for _, col := range match.Columns {
			fmt.Printf("    - %s: %s\n", col.Name, col.Type)
			if col.Description != "" {
				fmt.Printf("      %s\n", col.Description)
			}
		}
	}
	fmt.Println()
}
