package docs

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fenced block infos the scenarios are written with.
const (
	bashSetup    = "bash setup"    // starts a scenario in a fresh folder
	bashRun      = "bash run"      // output is kept for the next console check
	consoleCheck = "console check" // expected output of the last bash run
	bashCheck    = "bash check"    // must exit 0
)

var topicLine = regexp.MustCompile(`(?m)^\*\s+([^:]+):`)

func TestTopics(t *testing.T) {
	index, err := GetTopic(Index)
	if err != nil {
		t.Fatal(err)
	}
	var listed []string
	for _, m := range topicLine.FindAllStringSubmatch(index, -1) {
		listed = append(listed, strings.TrimSpace(m[1]))
	}
	slices.Sort(listed)

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(listed, all) {
		t.Errorf("topics listed in %s.md = %q, want every topic file %q", Index, listed, all)
	}
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("GetTopic(%q): %v", topic, err)
		}
	}

	if _, err := GetTopic("nope"); err == nil {
		t.Errorf("GetTopic(nope) succeeded")
	}
	every, err := GetTopics("*")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(every, "# qm user manual") {
		t.Errorf("GetTopics(*) includes the index")
	}
}

func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			blocks := parseBlocks(t, file)
			if len(blocks) == 0 {
				return
			}
			r := scenario{env: qmEnv(t), dir: t.TempDir()}
			for _, b := range blocks {
				r.run(t, b)
			}
		})
	}
}

// block is a fenced scenario block of a Markdown file.
type block struct {
	info    string
	content string
	pos     string // file:line, for messages
}

// parseBlocks returns the scenario blocks of file in document order.
func parseBlocks(t *testing.T, file string) []block {
	t.Helper()
	source, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	var blocks []block
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		info := string(fcb.Info.Segment.Value(source))
		switch info {
		case bashSetup, bashRun, consoleCheck, bashCheck:
		default:
			return ast.WalkContinue, nil
		}
		var content strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			content.Write(line.Value(source))
		}
		line := bytes.Count(source[:fcb.Info.Segment.Start], []byte{'\n'}) + 1
		blocks = append(blocks, block{info: info, content: content.String(), pos: fmt.Sprintf("%s:%d", file, line)})
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return blocks
}

// scenario runs the blocks of a file in order, sharing a working folder
// between a setup and the next one.
type scenario struct {
	env  []string
	dir  string
	last string // output of the last bash run
}

func (s *scenario) run(t *testing.T, b block) {
	t.Helper()
	if b.info == consoleCheck {
		want := strings.TrimSpace(b.content)
		got := strings.TrimSpace(s.last)
		if got != want {
			t.Errorf("%s: output mismatch:\ngot:\n%s\nwant:\n%s\ngot :%q\nwant:%q", b.pos, got, want, got, want)
		}
		return
	}
	if b.info == bashSetup {
		s.dir = t.TempDir()
	}

	cmd := exec.Command("bash", "-c", "set -e; "+b.content)
	cmd.Dir = s.dir
	cmd.Env = s.env
	out, err := cmd.CombinedOutput()
	if b.info == bashRun {
		s.last = string(out)
	}
	if err == nil {
		return
	}
	if b.info == bashCheck {
		t.Errorf("%s: %s failed: %v\n%s", b.pos, b.info, err, out)
		return
	}
	t.Fatalf("%s: %s failed: %v\n%s", b.pos, b.info, err, out)
}

var (
	buildOnce sync.Once
	qmDir     string
	buildErr  error
)

// qmEnv builds qm once and returns the environment the scenarios run in:
// qm on the PATH, the store in the working folder, a seeded market and
// plain output.
func qmEnv(t *testing.T) []string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "qm-docs")
		if err != nil {
			buildErr = err
			return
		}
		out, err := exec.Command("go", "build", "-o", filepath.Join(dir, "qm"), "../qm/").CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("building qm: %v\n%s", err, out)
			return
		}
		qmDir = dir
	})
	if buildErr != nil {
		t.Fatal(buildErr)
	}
	return append(os.Environ(),
		fmt.Sprintf("PATH=%s%c%s", qmDir, os.PathListSeparator, os.Getenv("PATH")),
		"QM_DATA_DIR=.",
		"QM_STORE_DRIVER=file",
		"QM_LOG_LEVEL=disabled",
		"QM_RENDER_RAW=true",
		"QM_MARKET_SEED=1",
		"QM_CURRENCY=CNY",
	)
}
