package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/akis/internal/ux"
)

var configTemplate = `name: my-project
log-dir: log/workflow
knowledge-store: project_knowledge.json
observation-cap: 10
slug-max-length: 50

# Domain tags accepted by lint. Leave empty to accept any tag.
domains:
  - frontend_only
  - backend_only
  - fullstack

retention:
  exclude:
    - log/**/*.md
  except:
    - '**/README.md'
`

var readmeTemplate = `# Workflow logs

One markdown file per session, named YYYY-MM-DD_HHMMSS_<slug>.md.
Each file carries optional YAML frontmatter (id, date, complexity, domain,
skills_loaded, files_modified, gates_passed, gates_violated, root_causes,
gotchas) followed by a free-form narrative.

Logs are immutable once written. They stay out of version control; this
README survives so the directory structure does.

Run 'akis new <slug>' to start a log and 'akis lint' to check the corpus.
`

var gitignoreTemplate = `log/**/*.md
!log/**/README.md
.akis/index.db
`

// Init creates a new .akis/ directory with config, the log directory with
// its README, a gitignore for retention, and an empty knowledge store.
func Init(targetDir string) error {
	akisDir := filepath.Join(targetDir, ".akis")
	if _, err := os.Stat(akisDir); err == nil {
		return fmt.Errorf(".akis directory already exists in %s", targetDir)
	}

	if err := os.MkdirAll(akisDir, 0755); err != nil {
		return fmt.Errorf("creating .akis: %w", err)
	}

	configPath := filepath.Join(akisDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config.yaml: %w", err)
	}

	logDir := filepath.Join(targetDir, "log", "workflow")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	readmePath := filepath.Join(logDir, "README.md")
	if err := os.WriteFile(readmePath, []byte(readmeTemplate), 0644); err != nil {
		return fmt.Errorf("writing README.md: %w", err)
	}

	gitignorePath := filepath.Join(akisDir, ".gitignore.example")
	if err := os.WriteFile(gitignorePath, []byte(gitignoreTemplate), 0644); err != nil {
		return fmt.Errorf("writing .gitignore.example: %w", err)
	}

	storePath := filepath.Join(targetDir, "project_knowledge.json")
	if _, err := os.Stat(storePath); os.IsNotExist(err) {
		if err := os.WriteFile(storePath, nil, 0644); err != nil {
			return fmt.Errorf("writing knowledge store: %w", err)
		}
	}

	fmt.Printf("\n%s%s✓ Initialized .akis/ directory%s\n\n", ux.Bold, ux.Green, ux.Reset)
	fmt.Printf("  Created:\n")
	fmt.Printf("    %s.akis/config.yaml%s         — project configuration\n", ux.Cyan, ux.Reset)
	fmt.Printf("    %slog/workflow/README.md%s    — log directory\n", ux.Cyan, ux.Reset)
	fmt.Printf("    %sproject_knowledge.json%s    — empty knowledge store\n", ux.Cyan, ux.Reset)
	fmt.Printf("    %s.akis/.gitignore.example%s  — retention rules to merge into .gitignore\n\n", ux.Cyan, ux.Reset)
	fmt.Printf("  Next steps:\n")
	fmt.Printf("    1. Edit %s.akis/config.yaml%s\n", ux.Cyan, ux.Reset)
	fmt.Printf("    2. Run %sakis new <slug>%s to start a workflow log\n", ux.Cyan, ux.Reset)
	fmt.Printf("    3. Run %sakis lint%s to check the corpus\n\n", ux.Cyan, ux.Reset)

	return nil
}
