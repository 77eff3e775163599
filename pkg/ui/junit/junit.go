// Package junit writes run results as a JUnit XML report so CI systems
// can display them. Each stage is a testsuite and each action a
// testcase; a non-zero exit code is a failure.
package junit

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/types"
	"github.com/beevik/etree"
	"github.com/spf13/afero"
)

// Build creates the report document
func Build(result types.Result) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("testsuites")
	root.CreateAttr("name", "moopad")

	var tests, failures int
	var total time.Duration

	for _, stage := range result.Stages {
		total += buildSuite(root, stage)
		tests += len(stage.Actions)
		failures += suiteFailures(stage)
	}

	for _, name := range result.Skipped {
		suite := root.CreateElement("testsuite")
		suite.CreateAttr("name", name)
		suite.CreateAttr("tests", "1")
		suite.CreateAttr("failures", "0")
		suite.CreateAttr("skipped", "1")
		tc := suite.CreateElement("testcase")
		tc.CreateAttr("name", name)
		tc.CreateAttr("classname", name)
		tc.CreateElement("skipped").CreateAttr("message", "not run, an earlier stage failed")
		tests++
	}

	root.CreateAttr("tests", fmt.Sprint(tests))
	root.CreateAttr("failures", fmt.Sprint(failures))
	root.CreateAttr("time", seconds(total))

	doc.Indent(2)
	return doc
}

func buildSuite(root *etree.Element, stage types.StageResult) time.Duration {
	suite := root.CreateElement("testsuite")
	suite.CreateAttr("name", stage.Name)
	suite.CreateAttr("tests", fmt.Sprint(len(stage.Actions)))
	suite.CreateAttr("failures", fmt.Sprint(suiteFailures(stage)))

	skipped := 0
	if stage.DryRun {
		skipped = len(stage.Actions)
	}
	suite.CreateAttr("skipped", fmt.Sprint(skipped))

	var total time.Duration
	for _, a := range stage.Actions {
		total += a.Duration

		tc := suite.CreateElement("testcase")
		tc.CreateAttr("name", a.Name)
		tc.CreateAttr("classname", stage.Name)
		tc.CreateAttr("time", seconds(a.Duration))
		if a.File != "" {
			tc.CreateAttr("file", a.File)
		}

		if stage.DryRun {
			tc.CreateElement("skipped").CreateAttr("message", "dry run")
			continue
		}

		if !a.Success {
			failure := tc.CreateElement("failure")
			failure.CreateAttr("type", string(errors.ErrActionExecute))
			failure.CreateAttr("message", fmt.Sprintf("%s exited with code %d", a.Run, a.ReturnCode))
			failure.SetText(a.Stderr)
		}
		if a.Stdout != "" {
			tc.CreateElement("system-out").SetText(a.Stdout)
		}
		if a.Stderr != "" {
			tc.CreateElement("system-err").SetText(a.Stderr)
		}
	}
	suite.CreateAttr("time", seconds(total))

	return total
}

func suiteFailures(stage types.StageResult) int {
	if stage.DryRun {
		return 0
	}
	return len(stage.Failed())
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// Write writes the report to w
func Write(w io.Writer, result types.Result) error {
	if _, err := Build(result).WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrReportWrite, "failed to write JUnit report")
	}
	return nil
}

// WriteFile writes the report to path, creating parent directories
func WriteFile(fs afero.Fs, path string, result types.Result) error {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrReportWrite, "failed to create directory for %s", path)
	}

	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrReportWrite, "failed to create %s", path)
	}
	defer func() { _ = f.Close() }()

	if err := Write(f, result); err != nil {
		return err
	}
	return f.Close()
}
