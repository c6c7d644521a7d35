// Package spreadsheet translates between tabular files (.xlsx, .csv)
// and event records: the import/export bridge of the catalog. Import
// is parse-then-apply: a file that fails to parse never partially
// mutates the store.
package spreadsheet

import "errors"

// ErrParse indicates an unreadable or structurally malformed file.
// The store is left untouched.
var ErrParse = errors.New("failed to parse spreadsheet")

// TemplateFilename is the produced template file name.
const TemplateFilename = "Dungeon_Architect_Template.xlsx"

// SheetName is the single sheet of the template and the sheet read on
// import.
const SheetName = "Events"

// Header is the column contract shared by the template, import and
// export. The names are matched case-sensitively on import.
var Header = []string{"ID", "Type", "Description", "Reward", "Difficulty", "System_Tag"}
