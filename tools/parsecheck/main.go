// Parsecheck runs the column slicer over captured command output.
//
// Capture the output of a tool such as lsblk into .txt files and point
// parsecheck at the file or the directory holding them:
//
//	lsblk -o NAME,SIZE,TYPE,FSTYPE,MOUNTPOINT,MODEL > testdata/lsblk-laptop.txt
//	go run ./tools/parsecheck testdata/
//
// Every file is parsed with table.ParseText and loaded into a table.Store,
// which checks that the rows share one column set. Parsed files are shown
// as tables; failures are listed at the end.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/muurk/diskmgr/internal/render"
	"github.com/muurk/diskmgr/internal/table"
	"github.com/muurk/diskmgr/internal/terminal"
)

// Statistics tracks parsing results
type Statistics struct {
	TotalFiles   int
	TotalRecords int
	ParseSuccess int
	ParseFailure int
	ColumnCounts map[int]int
	FailedFiles  []FailedFile
	EmptyFiles   []string
}

// FailedFile stores information about a parsing failure
type FailedFile struct {
	File  string
	Error string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: parsecheck <directory-or-file>")
		fmt.Println("Example: parsecheck testdata/")
		fmt.Println("         parsecheck lsblk-server.txt")
		os.Exit(1)
	}

	path := os.Args[1]

	stats := Statistics{
		ColumnCounts: make(map[int]int),
	}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Error accessing path: %v\n", err)
		os.Exit(1)
	}

	var files []string
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.txt"))
		if err != nil {
			fmt.Printf("Error finding capture files: %v\n", err)
			os.Exit(1)
		}
		if len(files) == 0 {
			fmt.Printf("No .txt files found in %s\n", path)
			os.Exit(1)
		}
		sort.Strings(files)
	} else {
		files = []string{path}
	}

	term := terminal.NewTTY(terminal.DefaultPalette())

	fmt.Printf("=== diskmgr Parser Check ===\n")
	fmt.Printf("Files to process: %d\n\n", len(files))

	for _, file := range files {
		processFile(term, file, &stats)
	}

	printStatistics(&stats)
	if stats.ParseFailure > 0 {
		os.Exit(1)
	}
}

func processFile(term terminal.Terminal, filename string, stats *Statistics) {
	stats.TotalFiles++

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file %s: %v\n", filename, err)
		return
	}

	records, err := table.ParseText(string(data))
	if err != nil {
		stats.fail(filename, err)
		return
	}
	if len(records) == 0 {
		stats.EmptyFiles = append(stats.EmptyFiles, filename)
		return
	}

	store, err := table.New(
		table.FromRecords(records...),
		table.WithTitle(filepath.Base(filename)),
	)
	if err != nil {
		stats.fail(filename, err)
		return
	}

	stats.ParseSuccess++
	stats.TotalRecords += store.Count()
	stats.ColumnCounts[len(store.Columns())]++

	if err := render.Display(term, store); err != nil {
		fmt.Printf("Error displaying %s: %v\n", filename, err)
	}
}

func (s *Statistics) fail(filename string, err error) {
	s.ParseFailure++
	s.FailedFiles = append(s.FailedFiles, FailedFile{File: filename, Error: err.Error()})
}

func printStatistics(stats *Statistics) {
	rule := strings.Repeat("-", 40)

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	fmt.Printf("PARSE RESULTS\n")
	fmt.Printf("%s\n\n", strings.Repeat("=", 40))

	fmt.Printf("Files Processed:    %d\n", stats.TotalFiles)
	fmt.Printf("Records Parsed:     %d\n", stats.TotalRecords)
	fmt.Printf("Parse Success:      %d\n", stats.ParseSuccess)
	fmt.Printf("Parse Failure:      %d\n", stats.ParseFailure)

	if len(stats.ColumnCounts) > 0 {
		fmt.Printf("\n%s\nCOLUMN COUNT DISTRIBUTION\n%s\n", rule, rule)
		counts := make([]int, 0, len(stats.ColumnCounts))
		for n := range stats.ColumnCounts {
			counts = append(counts, n)
		}
		sort.Ints(counts)
		for _, n := range counts {
			fmt.Printf("%d columns: %d files\n", n, stats.ColumnCounts[n])
		}
	}

	if len(stats.EmptyFiles) > 0 {
		fmt.Printf("\n%s\nEMPTY FILES\n%s\n", rule, rule)
		for _, f := range stats.EmptyFiles {
			fmt.Printf("  %s\n", f)
		}
	}

	if len(stats.FailedFiles) > 0 {
		fmt.Printf("\n%s\nPARSE FAILURES (%d total)\n%s\n", rule, len(stats.FailedFiles), rule)

		maxShow := 10
		if len(stats.FailedFiles) > maxShow {
			fmt.Printf("(Showing first %d of %d failures)\n", maxShow, len(stats.FailedFiles))
		}
		for i, failed := range stats.FailedFiles {
			if i >= maxShow {
				break
			}
			fmt.Printf("\nFailure #%d:\n", i+1)
			fmt.Printf("  File: %s\n", failed.File)
			fmt.Printf("  Error: %s\n", failed.Error)
		}
	}
}
