package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with akis",
		Content: topicQuickstart,
	},
	{
		Name:    "format",
		Title:   "Workflow Log Format",
		Summary: "Filename convention, frontmatter fields, and lint rules",
		Content: topicFormat,
	},
	{
		Name:    "knowledge",
		Title:   "Knowledge Store",
		Summary: "Entity/relation JSONL format and merge semantics",
		Content: topicKnowledge,
	},
	{
		Name:    "retention",
		Title:   "Retention Policy",
		Summary: "Which files stay local and which get tracked",
		Content: topicRetention,
	},
	{
		Name:    "search",
		Title:   "Indexing and Search",
		Summary: "The SQLite full-text index over logs and entities",
		Content: topicSearch,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize a project:

    cd your-project
    akis init

   This creates .akis/config.yaml, log/workflow/ with a README, and an
   empty project_knowledge.json.

2. Start a log at the beginning of a session:

    akis new "fix the session tracker" --complexity medium --domain fullstack

3. Fill in the narrative and frontmatter as the session goes. When done,
   check the corpus:

    akis lint

4. Record what you learned:

    akis add entity --name nop.backend.session-tracker \
        --entity-type component --obs "tracks session state"
    akis add relation --from nop.frontend.dashboard \
        --to nop.backend.session-tracker --rel USES

5. Search past sessions:

    akis index
    akis search "stale closure"
`

const topicFormat = `Workflow Log Format
===================

Each session produces one markdown file:

    log/workflow/YYYY-MM-DD_HHMMSS_<slug>.md

The slug is lowercase-hyphenated, at most 50 characters (configurable).

The file opens with optional YAML frontmatter between '---' lines:

    id              <date>_<slug>
    session         uuid assigned at creation
    date            YYYY-MM-DD
    complexity      simple | medium | complex
    domain          free-text tag, optionally constrained by config
    skills_loaded   list of reference documents consulted
    files_modified  list of {path, type, domain}
    agents_delegated, gates_passed, gates_violated
    root_causes     list of {problem, solution, skill}
    gotchas         list of {pattern, warning, solution, applies_to}

Unknown keys are preserved. A file with no frontmatter is still a valid
record: empty metadata, the whole file as body.

Logs are immutable once written. 'akis lint' enforces the invariants:

  - the filename timestamp parses and does not precede the stated date
  - the id's date prefix agrees with the date field
  - frontmatter round-trips losslessly
  - duplicate logs for one session are flagged
`

const topicKnowledge = `Knowledge Store
===============

project_knowledge.json is an append-only JSONL file. Two line shapes:

    {"type":"entity","name":"nop.backend.session-tracker",
     "entityType":"component","observations":["...","..."]}

    {"type":"relation","from":"a","to":"b","relationType":"USES"}

Entity names are dotted hierarchical strings. Deduplication rules:

  - entities merge by exact name; observations are an order-preserving
    union, truncated to the configured cap keeping the most recent
  - relations deduplicate by the (from, to, relationType) key
  - merging twice changes nothing

'akis add' deduplicates on write so the store stays canonical.
'akis merge' compacts a store that grew through raw appends; the rewrite
is atomic (write to a temp file, fsync, rename).
`

const topicRetention = `Retention Policy
================

Session logs stay on the machine where they were written; only structure
and documentation get tracked. The default policy:

    exclude:
      - log/**/*.md
    except:
      - '**/README.md'

Exceptions win over exclusions. 'akis retention' walks the log tree and
reports the classification. 'akis init' writes .akis/.gitignore.example
with matching rules to merge into your .gitignore.
`

const topicSearch = `Indexing and Search
===================

'akis index' rebuilds a SQLite full-text index (.akis/index.db by
default) over log bodies and entity observations. The index is derived
data: deleting it loses nothing, and every rebuild starts from scratch.

'akis search <query>' runs a ranked match across both tables. Terms are
quoted before they reach the FTS engine, so punctuation in a query is
safe.
`
