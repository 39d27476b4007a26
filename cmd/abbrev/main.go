package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/abbrev-extract/internal/config"
	"github.com/abbrev-extract/internal/db"
	"github.com/abbrev-extract/internal/debug"
	"github.com/abbrev-extract/internal/extract"
	"github.com/abbrev-extract/internal/input"
	"github.com/abbrev-extract/internal/store"
)

var (
	// Global debug switch, set by the persistent --debug flag
	debugMode bool
)

func main() {
	config.LoadEnv()

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "abbrev",
		Short: "Abbreviation definition extraction system",
		Long:  `Finds abbreviation/definition pairs in plain text, as in "World Health Organization (WHO)", and optionally stores them in PostgreSQL for browsing and export`,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Log omitted candidates and timings")

	// Add subcommands
	rootCmd.AddCommand(createExtractCmd())
	rootCmd.AddCommand(createBatchCmd())
	rootCmd.AddCommand(createImportCmd())
	rootCmd.AddCommand(createRunCmd())
	rootCmd.AddCommand(createExportCmd())
	rootCmd.AddCommand(createPingCmd())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// connectStore opens the database on demand so that purely local commands
// run without one.
func connectStore() (*db.Connection, *store.Store) {
	conn, err := db.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return conn, store.New(conn.DB)
}

// readDocument reads a whole file through the input layer, so compressed
// files and Latin-1 fallback behave exactly as they do during extraction.
func readDocument(path string) (string, error) {
	src, err := input.FromFile(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	var lines []string
	for src.Scan() {
		lines = append(lines, src.Text())
	}
	if err := src.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// createExtractCmd creates the extract subcommand
func createExtractCmd() *cobra.Command {
	var text string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "extract [filename]",
		Short: "Extract abbreviation/definition pairs from a file or literal text",
		Long:  `Scan text for parenthesized abbreviations defined by the words in front of them. Reads the given file (.gz and .xz are decompressed transparently) or the --text argument; the file wins when both are given.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			// No file and no --text is an empty source, not an error
			src, err := input.From(path, text)
			if err != nil {
				log.Fatalf("Failed to open input: %v", err)
			}
			defer src.Close()

			extractor := extract.NewExtractor(extract.Config{Debug: debugMode})
			result, err := extractor.Extract(src)
			if err != nil {
				log.Fatalf("Extraction failed: %v", err)
			}

			if asJSON {
				printJSON(result)
				return
			}
			printResultTable(result)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Extract from this literal text instead of a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON")

	return cmd
}

func printResultTable(result *extract.Result) {
	fmt.Printf("\n=== Extraction Results ===\n")
	if len(result.Found) == 0 {
		fmt.Println("No abbreviations found")
		return
	}

	fmt.Println("Abbreviation | Definition")
	fmt.Println("-------------|------------")
	for _, pair := range result.Found {
		fmt.Printf("%-12s | %s\n", pair.Abbrev.Text, pair.Definition.Text)
	}
	fmt.Printf("\nKept: %d\n", result.Kept)
	fmt.Printf("Omitted: %d\n", result.Omitted)
}

func printJSON(result *extract.Result) {
	type jsonPair struct {
		Line         int    `json:"line"`
		Abbreviation string `json:"abbreviation"`
		Definition   string `json:"definition"`
		AbbrevStart  int    `json:"abbrev_start"`
		AbbrevStop   int    `json:"abbrev_stop"`
		DefStart     int    `json:"def_start"`
		DefStop      int    `json:"def_stop"`
	}

	out := struct {
		Pairs   map[string]string `json:"pairs"`
		Found   []jsonPair        `json:"found"`
		Kept    int               `json:"kept"`
		Omitted int               `json:"omitted"`
	}{
		Pairs:   make(map[string]string, len(result.Pairs)),
		Found:   make([]jsonPair, 0, len(result.Found)),
		Kept:    result.Kept,
		Omitted: result.Omitted,
	}
	for abbrev, def := range result.Pairs {
		out.Pairs[abbrev] = def.Text
	}
	for _, pair := range result.Found {
		out.Found = append(out.Found, jsonPair{
			Line:         pair.Line,
			Abbreviation: pair.Abbrev.Text,
			Definition:   pair.Definition.Text,
			AbbrevStart:  pair.Abbrev.Start,
			AbbrevStop:   pair.Abbrev.Stop,
			DefStart:     pair.Definition.Start,
			DefStop:      pair.Definition.Stop,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode JSON: %v", err)
	}
	fmt.Println(string(data))
}

// createBatchCmd creates the batch subcommand
func createBatchCmd() *cobra.Command {
	var pattern string
	var save bool
	var runLabel string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Extract from every file matching a glob pattern",
		Long:  `Run extraction over all files matching a doublestar pattern such as "corpus/**/*.txt". With --save, each file is imported as a document and its pairs are stored under a single extraction run.`,
		Run: func(cmd *cobra.Command, args []string) {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				log.Fatalf("Bad pattern %q: %v", pattern, err)
			}
			if len(matches) == 0 {
				log.Fatalf("No files match %q", pattern)
			}
			sort.Strings(matches)

			if runLabel == "" {
				runLabel = fmt.Sprintf("batch-%d", time.Now().Unix())
			}

			done := debug.Timing(debugMode, "batch extraction")
			defer done()

			extractor := extract.NewExtractor(extract.Config{Debug: debugMode})

			if save {
				runBatchSaved(extractor, matches, runLabel)
				return
			}

			totalKept, totalOmitted, failed := 0, 0, 0
			for _, path := range matches {
				src, err := input.FromFile(path)
				if err != nil {
					log.Printf("Skipping %s: %v", path, err)
					failed++
					continue
				}
				result, err := extractor.Extract(src)
				src.Close()
				if err != nil {
					log.Printf("Skipping %s: %v", path, err)
					failed++
					continue
				}
				fmt.Printf("%s: %d kept, %d omitted\n", path, result.Kept, result.Omitted)
				totalKept += result.Kept
				totalOmitted += result.Omitted
			}

			fmt.Printf("\n=== Batch Extraction Results ===\n")
			fmt.Printf("Files Processed: %d\n", len(matches)-failed)
			fmt.Printf("Files Failed: %d\n", failed)
			fmt.Printf("Total Kept: %d\n", totalKept)
			fmt.Printf("Total Omitted: %d\n", totalOmitted)
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob pattern of files to process (** matches directories)")
	cmd.Flags().BoolVar(&save, "save", false, "Import each file and store its pairs")
	cmd.Flags().StringVar(&runLabel, "label", "", "Label for the extraction run (with --save)")
	cmd.MarkFlagRequired("pattern")

	return cmd
}

func runBatchSaved(extractor *extract.Extractor, matches []string, runLabel string) {
	conn, st := connectStore()
	defer conn.Close()

	if err := st.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	run, err := st.BeginRun(runLabel)
	if err != nil {
		log.Fatalf("Failed to create extraction run: %v", err)
	}

	docs, totalKept, totalOmitted, saved := 0, 0, 0, 0
	for _, path := range matches {
		content, err := readDocument(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}

		doc, err := st.ImportDocument(path, filepath.Base(path), content)
		if err != nil {
			log.Printf("Failed to import %s: %v", path, err)
			continue
		}

		result := extractor.ExtractLines(doc.Lines())
		n, err := st.SavePairs(run.RunID, doc.DocID, result)
		if err != nil {
			log.Printf("Failed to save pairs for %s: %v", path, err)
			continue
		}

		fmt.Printf("%s: doc %d, %d kept, %d omitted\n", path, doc.DocID, result.Kept, result.Omitted)
		docs++
		totalKept += result.Kept
		totalOmitted += result.Omitted
		saved += n
	}

	if err := st.FinishRun(run.RunID, docs, totalKept, totalOmitted); err != nil {
		log.Printf("Failed to complete extraction run: %v", err)
	}

	fmt.Printf("\n=== Batch Extraction Results ===\n")
	fmt.Printf("Run ID: %d\n", run.RunID)
	fmt.Printf("Run Label: %s\n", runLabel)
	fmt.Printf("Documents: %d\n", docs)
	fmt.Printf("Total Kept: %d\n", totalKept)
	fmt.Printf("Total Omitted: %d\n", totalOmitted)
	fmt.Printf("Pairs Saved: %d\n", saved)
}

// createImportCmd creates the import subcommand
func createImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [filename...]",
		Short: "Import documents for later extraction runs",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			conn, st := connectStore()
			defer conn.Close()

			if err := st.InitSchema(); err != nil {
				log.Fatalf("Failed to initialize schema: %v", err)
			}

			for _, path := range args {
				content, err := readDocument(path)
				if err != nil {
					log.Fatalf("Failed to read %s: %v", path, err)
				}

				doc, err := st.ImportDocument(path, filepath.Base(path), content)
				if err != nil {
					log.Fatalf("Failed to import %s: %v", path, err)
				}

				fmt.Printf("Imported %s as document %d (%d lines)\n", path, doc.DocID, doc.LineCount)
			}
		},
	}
}

// createRunCmd creates the run subcommand
func createRunCmd() *cobra.Command {
	var runLabel string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run extraction over every imported document",
		Long:  `Extract abbreviation/definition pairs from all stored documents and save them under a new extraction run`,
		Run: func(cmd *cobra.Command, args []string) {
			if runLabel == "" {
				runLabel = fmt.Sprintf("run-%d", time.Now().Unix())
			}

			conn, st := connectStore()
			defer conn.Close()

			if err := st.InitSchema(); err != nil {
				log.Fatalf("Failed to initialize schema: %v", err)
			}

			docs, err := st.ListDocuments()
			if err != nil {
				log.Fatalf("Failed to list documents: %v", err)
			}
			if len(docs) == 0 {
				log.Fatal("No documents imported yet")
			}

			run, err := st.BeginRun(runLabel)
			if err != nil {
				log.Fatalf("Failed to create extraction run: %v", err)
			}

			done := debug.Timing(debugMode, "extraction run")
			defer done()

			extractor := extract.NewExtractor(extract.Config{Debug: debugMode})

			processed, totalKept, totalOmitted, saved := 0, 0, 0, 0
			for _, meta := range docs {
				doc, err := st.GetDocument(meta.DocID)
				if err != nil {
					log.Printf("Failed to load document %d: %v", meta.DocID, err)
					continue
				}

				result := extractor.ExtractLines(doc.Lines())
				n, err := st.SavePairs(run.RunID, doc.DocID, result)
				if err != nil {
					log.Printf("Failed to save pairs for document %d: %v", doc.DocID, err)
					continue
				}

				processed++
				totalKept += result.Kept
				totalOmitted += result.Omitted
				saved += n
			}

			if err := st.FinishRun(run.RunID, processed, totalKept, totalOmitted); err != nil {
				log.Printf("Failed to complete extraction run: %v", err)
			}

			fmt.Printf("\n=== Extraction Run Results ===\n")
			fmt.Printf("Run ID: %d\n", run.RunID)
			fmt.Printf("Run Label: %s\n", runLabel)
			fmt.Printf("Documents Processed: %d\n", processed)
			fmt.Printf("Total Kept: %d\n", totalKept)
			fmt.Printf("Total Omitted: %d\n", totalOmitted)
			fmt.Printf("Pairs Saved: %d\n", saved)
		},
	}

	cmd.Flags().StringVar(&runLabel, "label", "", "Label for this extraction run")

	return cmd
}

// createExportCmd creates the export subcommand
func createExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [dir]",
		Short: "Export stored pairs and run history as CSV files",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			outputDir := "export"
			if len(args) == 1 {
				outputDir = args[0]
			}

			conn, st := connectStore()
			defer conn.Close()

			exporter := store.NewExporter(st)
			n, err := exporter.ExportCSVs(outputDir)
			if err != nil {
				log.Fatalf("Export failed: %v", err)
			}

			fmt.Printf("Exported %d pairs to %s\n", n, outputDir)
		},
	}
}

// createPingCmd creates a command to test database connectivity
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test database connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			conn, _ := connectStore()
			defer conn.Close()

			fmt.Println("Database connection successful!")

			var count int
			err := conn.DB.QueryRow("SELECT COUNT(*) FROM document").Scan(&count)
			if err != nil {
				log.Printf("Error counting documents: %v", err)
			} else {
				fmt.Printf("Documents imported: %d\n", count)
			}

			err = conn.DB.QueryRow("SELECT COUNT(*) FROM abbreviation").Scan(&count)
			if err != nil {
				log.Printf("Error counting abbreviations: %v", err)
			} else {
				fmt.Printf("Abbreviation pairs stored: %d\n", count)
			}
		},
	}
}
