package console

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/diillson/momcarebot/internal/shared/types"
)

// Console implements types.ConsoleInterface on top of pterm.
type Console struct{}

// NewConsole creates a Console.
func NewConsole() *Console {
	return &Console{}
}

func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo prints an info line.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning prints a warning line.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError prints an error line.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess prints a success line.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status starts a spinner showing message.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Step markers for job reports.
var (
	BrightGreen = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightRed   = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Update replaces the spinner text.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop stops the spinner. Calling it again is a no-op.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
		h.spinner = nil
	}
}

// Table collects rows and renders them as a boxed pterm table.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable creates an empty table.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow appends a row, formatting each cell with fmt.Sprint.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render returns the table as a string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}
