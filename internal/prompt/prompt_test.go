package prompt

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	content := "export const add = (a: number, b: number) => a + b;"
	p := Build("src/math.ts", content, "")

	for _, want := range []string{
		"senior code reviewer",
		"## Major Issues",
		"## Suggestions for Refactoring",
		"## Out-of-tech",
		"## Documentation",
		"## Notes",
		"src/math.ts",
		content,
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if !strings.Contains(p, "<user-code>\n```\n"+content+"\n```\n</user-code>") {
		t.Error("code should be wrapped in a fenced user-code block")
	}
}

func TestBuild_Instructions(t *testing.T) {
	p := Build("a.ts", "code", "Prefer zod for runtime validation.")

	if !strings.Contains(p, "## Project Instructions") {
		t.Error("prompt missing project instructions section")
	}
	if !strings.Contains(p, "Prefer zod for runtime validation.") {
		t.Error("prompt missing instruction text")
	}

	// The section must land inside the system block.
	sysEnd := strings.Index(p, "</system>")
	instr := strings.Index(p, "## Project Instructions")
	if instr == -1 || sysEnd == -1 || instr > sysEnd {
		t.Error("instructions should be inside the system section")
	}
}

func TestBuild_NoInstructionsSection(t *testing.T) {
	p := Build("a.ts", "code", "")
	if strings.Contains(p, "## Project Instructions") {
		t.Error("empty instructions should not add a section")
	}
}
