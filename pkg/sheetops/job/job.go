// Package job loads YAML job files describing a sequence of sheet
// operations per workbook and runs them.
package job

import (
	"errors"
	"fmt"
	"cmp"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ukaji3/sheetops-go/pkg/sheetops/parser"
	"gopkg.in/yaml.v3"
)

// DefaultParallelism is the number of workbooks processed at once when neither
// the job file nor the caller sets it.
const DefaultParallelism = 4

// File is the top level of a job file.
type File struct {
	// Parallelism caps how many jobs run at once. Zero leaves it to the runner.
	Parallelism int `yaml:"parallelism" validate:"gte=0"`
	// Jobs lists the workbooks to process.
	Jobs []Job `yaml:"jobs" validate:"required,min=1,dive"`
}

// Job processes one workbook.
type Job struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input" validate:"required"`
	Output string `yaml:"output"` // defaults to Input
	Steps  []Step `yaml:"steps" validate:"required,min=1,dive"`

	// DryRun applies the steps without writing the output.
	DryRun bool `yaml:"dry_run"`
}

// Step holds exactly one operation.
type Step struct {
	Sort    *SortStep    `yaml:"sort,omitempty"`
	Filter  *FilterStep  `yaml:"filter,omitempty"`
	Header  *HeaderStep  `yaml:"header,omitempty"`
	Format  *FormatStep  `yaml:"format,omitempty"`
	AutoFit *AutoFitStep `yaml:"autofit,omitempty"`
	Merge   *MergeStep   `yaml:"merge,omitempty"`
}

// SortStep maps to sheetops.SortOptions.
type SortStep struct {
	Columns    []string `yaml:"columns"`
	Sheets     []string `yaml:"sheets"`
	Descending bool     `yaml:"descending"`
}

// FilterStep maps to sheetops.FilterOptions.
type FilterStep struct {
	SkipRows int      `yaml:"skip_rows" validate:"gte=0"`
	Column   string   `yaml:"column" validate:"required,column"`
	Values   []string `yaml:"values" validate:"required,min=1"`
	Sheets   []string `yaml:"sheets"`
}

// HeaderStep maps to sheetops.HeaderOptions.
type HeaderStep struct {
	Header []string `yaml:"header" validate:"required,min=1"`
	Sheets []string `yaml:"sheets"`
}

// FormatStep maps to sheetops.FormatOptions.
type FormatStep struct {
	Sheets      []string `yaml:"sheets"`
	Range       string   `yaml:"range" validate:"omitempty,cellrange"`
	BorderStyle *int     `yaml:"border_style" validate:"omitempty,gte=0,lte=13"`
	BorderColor string   `yaml:"border_color" validate:"omitempty,hexadecimal,len=6"`
	BoldHeader  *bool    `yaml:"bold_header"`
}

// AutoFitStep maps to sheetops.AutoFitOptions.
type AutoFitStep struct {
	Sheets  []string `yaml:"sheets"`
	Padding *int     `yaml:"padding" validate:"omitempty,gte=0"`
	Center  *bool    `yaml:"center"`
}

// MergeStep maps to sheetops.MergeOptions. Columns are letters or 1-based numbers.
type MergeStep struct {
	Sheet      string `yaml:"sheet"`
	Group      string `yaml:"group" validate:"required,column"`
	Target     string `yaml:"target" validate:"required,column"`
	HeaderRows int    `yaml:"header_rows" validate:"gte=0"`
	DryRun     bool   `yaml:"dry_run"`
}

// ErrInvalidJob indicates a job file that fails validation.
var ErrInvalidJob = errors.New("invalid job file")

// Op returns the name of the step's operation, or "" when none is set.
func (s Step) Op() string {
	switch {
	case s.Sort != nil:
		return "sort"
	case s.Filter != nil:
		return "filter"
	case s.Header != nil:
		return "header"
	case s.Format != nil:
		return "format"
	case s.AutoFit != nil:
		return "autofit"
	case s.Merge != nil:
		return "merge"
	}
	return ""
}

func (s Step) opCount() int {
	n := 0
	for _, set := range []bool{s.Sort != nil, s.Filter != nil, s.Header != nil, s.Format != nil, s.AutoFit != nil, s.Merge != nil} {
		if set {
			n++
		}
	}
	return n
}

// Load reads, defaults and validates the job file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a job file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	f.applyDefaults()
	if err := Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) applyDefaults() {
	for i := range f.Jobs {
		j := &f.Jobs[i]
		if j.Output == "" {
			j.Output = j.Input
		}
		if j.Name == "" {
			j.Name = fmt.Sprintf("job-%d", i+1)
		}
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("column", func(fl validator.FieldLevel) bool {
		_, err := parser.ParseColumn(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("cellrange", func(fl validator.FieldLevel) bool {
		_, err := parser.ParseRange(fl.Field().String())
		return err == nil
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		step := sl.Current().Interface().(Step)
		if step.opCount() != 1 {
			sl.ReportError(step, "step", "Step", "oneop", "")
		}
	}, Step{})
	return v
}

// Validate checks a decoded job file.
func Validate(f *File) error {
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("%w: %s", ErrInvalidJob, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	return CheckPaths(f.Jobs)
}

// CheckPaths rejects jobs that would race on a workbook when run
// concurrently: two jobs writing the same output, or one job writing the
// workbook another job reads. Jobs may share an input they only read.
// Dry runs write nothing.
func CheckPaths(jobs []Job) error {
	writers := make(map[string]int)
	for i, j := range jobs {
		if j.DryRun {
			continue
		}
		out := workbookPath(cmp.Or(j.Output, j.Input))
		if other, ok := writers[out]; ok {
			return fmt.Errorf("%w: jobs %s and %s both write %s", ErrInvalidJob, jobs[other].Name, j.Name, out)
		}
		writers[out] = i
	}
	for i, j := range jobs {
		in := workbookPath(j.Input)
		if w, ok := writers[in]; ok && w != i {
			return fmt.Errorf("%w: job %s reads %s while job %s writes it", ErrInvalidJob, j.Name, in, jobs[w].Name)
		}
	}
	return nil
}

// workbookPath normalizes path so different spellings of one file compare equal.
func workbookPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneop":
		return fmt.Sprintf("%s must set exactly one operation", fe.Namespace())
	case "column":
		return fmt.Sprintf("%s: %q is not a column letter or number", fe.Namespace(), fe.Value())
	case "cellrange":
		return fmt.Sprintf("%s: %q is not a cell range", fe.Namespace(), fe.Value())
	}
	return fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
}
