// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/index"
	"github.com/pdiddy/pdftext/pkg/types"
)

// --- index subcommand ---

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Build a full-text index over the converted text files",
	Long: `Index ingests the .txt files in a directory into a SQLite database with
FTS5 indexing under <dir>/index/. Unchanged files are skipped on
subsequent runs, so indexing after each conversion batch stays cheap.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(cmd, args))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the text index",
	Long: `Search runs an FTS5 full-text query over the indexed documents and prints
ranked matches with a context snippet. Without a query it lists the
indexed documents.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(cmd, args[:0]))
	if err != nil {
		return err
	}
	defer store.Close()

	docID, _ := cmd.Flags().GetString("doc")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := index.QueryOptions{
		Query:      strings.Join(args, " "),
		DocID:      docID,
		MaxResults: limit,
	}

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []index.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-30s  %s\n", "Rank", "Document", "Snippet")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range results {
		doc := r.DocID
		if len(doc) > 30 {
			doc = doc[:27] + "..."
		}
		snippet := strings.ReplaceAll(r.Snippet, "\n", " ")
		if len(snippet) > 60 {
			snippet = snippet[:57] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-30s  %s\n", i+1, doc, snippet)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var exportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Export the text index to YAML or JSON",
	Long: `Export writes every indexed document, including content and the link back
to its source PDF, to <dir>/index/export.yaml or export.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(cmd, args))
	if err != nil {
		return err
	}
	defer store.Close()

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background()); err != nil {
			return err
		}
		fmt.Println("Exported to index/export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background()); err != nil {
			return err
		}
		fmt.Println("Exported to index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func indexConfig(cmd *cobra.Command, args []string) types.IndexConfig {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.IndexConfig{
		Dir:        targetDir(cmd, args),
		IndexDir:   indexDir,
		MaxResults: maxResults,
	}
}

func init() {
	for _, cmd := range []*cobra.Command{indexCmd, searchCmd, exportCmd} {
		cmd.Flags().String("dir", "", "directory containing converted text files")
		cmd.Flags().String("index-dir", "", "where the index database lives (default: <dir>/index)")
		cmd.Flags().Int("max-results", 20, "maximum number of search results")
	}

	searchCmd.Flags().String("doc", "", "restrict results to one document ID")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(exportCmd)
}
