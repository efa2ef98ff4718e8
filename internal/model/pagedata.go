package model

// The content tag declares how the validator treats a field:
//
//	optional   may be empty or absent
//	shared     identical in every locale at the same position
//	localized  slice length may differ between locales
//	keyed      slice matched across locales by key, not position
//
// plus one kind: href, url, path, color, date, semver, version, html, yamlfm.
// Numbers and booleans are always compared across locales.

// PageData is everything one locale of the landing needs.
type PageData struct {
	Meta           PageMeta           `yaml:"meta" json:"meta"`
	Nav            []NavLink          `yaml:"nav" json:"nav"`
	Hero           HeroData           `yaml:"hero" json:"hero"`
	Stats          []Stat             `yaml:"stats" json:"stats"`
	CoreAgents     AgentSection       `yaml:"coreAgents" json:"coreAgents"`
	OptionalAgents AgentSection       `yaml:"optionalAgents" json:"optionalAgents"`
	Composition    CompositionSection `yaml:"composition" json:"composition"`
	Dashboard      DashboardSection   `yaml:"dashboard" json:"dashboard"`
	Workflows      WorkflowSection    `yaml:"workflows" json:"workflows"`
	Gates          GateSection        `yaml:"gates" json:"gates"`
	Skills         SkillSection       `yaml:"skills" json:"skills"`
	Infra          InfraSection       `yaml:"infra" json:"infra"`
	Commands       CommandSection     `yaml:"commands" json:"commands"`
	Stacks         StackSection       `yaml:"stacks" json:"stacks"`
	UseCases       UseCaseSection     `yaml:"useCases" json:"useCases"`
	Memory         MemorySection      `yaml:"memory" json:"memory"`
	Install        InstallSection     `yaml:"install" json:"install"`
	Config         ConfigSection      `yaml:"config" json:"config"`
	FAQ            FAQSection         `yaml:"faq" json:"faq"`
	Changelog      []ChangelogVersion `yaml:"changelog" json:"changelog" content:"keyed"`
	Footer         FooterData         `yaml:"footer" json:"footer"`
}

// PageMeta holds the document title, description, Open Graph and Twitter Card tags.
type PageMeta struct {
	Title       string      `yaml:"title" json:"title"`
	Description string      `yaml:"description" json:"description"`
	Canonical   string      `yaml:"canonical" json:"canonical" content:"url"`
	Locale      string      `yaml:"locale" json:"locale"`
	OG          OpenGraph   `yaml:"og" json:"og"`
	Twitter     TwitterCard `yaml:"twitter" json:"twitter"`
}

type OpenGraph struct {
	Type        string `yaml:"type" json:"type" content:"shared"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	URL         string `yaml:"url" json:"url" content:"url"`
	SiteName    string `yaml:"siteName" json:"siteName" content:"shared"`
	Locale      string `yaml:"locale" json:"locale"`
	Image       string `yaml:"image" json:"image" content:"shared,url"`
	ImageWidth  int    `yaml:"imageWidth" json:"imageWidth"`
	ImageHeight int    `yaml:"imageHeight" json:"imageHeight"`
	ImageType   string `yaml:"imageType" json:"imageType" content:"shared"`
}

type TwitterCard struct {
	Card        string `yaml:"card" json:"card" content:"shared"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image" content:"shared,url"`
}

// NavLink is a navigation anchor with an inline SVG icon.
type NavLink struct {
	Href  string `yaml:"href" json:"href" content:"shared,href"`
	Label string `yaml:"label" json:"label"`
	// SVGContent is the inner markup of the <svg> element.
	SVGContent string `yaml:"svgContent" json:"svgContent" content:"shared,html"`
}

type HeroCTA struct {
	Label     string `yaml:"label" json:"label"`
	Command   string `yaml:"command" json:"command" content:"shared"`
	AriaLabel string `yaml:"ariaLabel" json:"ariaLabel"`
}

type HeroData struct {
	TitleHTML    string    `yaml:"titleHtml" json:"titleHtml" content:"html"`
	PlatformHTML string    `yaml:"platformHtml" json:"platformHtml" content:"html"`
	Subtitle     string    `yaml:"subtitle" json:"subtitle"`
	CTAs         []HeroCTA `yaml:"ctas" json:"ctas"`
}

// Stat is one figure of the stats bar. ID names the fact it counts.
type Stat struct {
	ID     string `yaml:"id" json:"id" content:"shared"`
	Number int    `yaml:"number" json:"number"`
	Label  string `yaml:"label" json:"label"`
}

// SectionHeader is the label/title/description block most sections open with.
type SectionHeader struct {
	Label       string `yaml:"label" json:"label"`
	LabelColor  string `yaml:"labelColor,omitempty" json:"labelColor,omitempty" content:"optional,shared,color"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty" content:"optional"`
}

type Agent struct {
	Name   string `yaml:"name" json:"name"`
	Model  string `yaml:"model" json:"model" content:"shared"`
	Alias  string `yaml:"alias" json:"alias"`
	Role   string `yaml:"role" json:"role"`
	Phrase string `yaml:"phrase" json:"phrase"`
	Color  string `yaml:"color" json:"color" content:"shared,color"`
}

type AgentSection struct {
	Header SectionHeader `yaml:"header" json:"header"`
	Agents []Agent       `yaml:"agents" json:"agents"`
}

// CompositionAgent lights up when all of its keywords appear in the demo text.
type CompositionAgent struct {
	ID       string   `yaml:"id" json:"id" content:"shared"`
	Name     string   `yaml:"name" json:"name"`
	Color    string   `yaml:"color" json:"color" content:"shared,color"`
	Score    float64  `yaml:"score" json:"score"`
	Keywords []string `yaml:"keywords" json:"keywords" content:"optional,localized"`
}

type CoreAgent struct {
	ID    string `yaml:"id" json:"id" content:"shared"`
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color" content:"shared,color"`
	Role  string `yaml:"role" json:"role"`
}

type CompositionSection struct {
	Header                SectionHeader      `yaml:"header" json:"header"`
	IntroHTML             string             `yaml:"introHtml" json:"introHtml" content:"html"`
	TerminalPrompt        string             `yaml:"terminalPrompt" json:"terminalPrompt" content:"shared"`
	TerminalText          string             `yaml:"terminalText" json:"terminalText"`
	CoreAgentsLabel       string             `yaml:"coreAgentsLabel" json:"coreAgentsLabel"`
	CoreAgentsActiveLabel string             `yaml:"coreAgentsActiveLabel" json:"coreAgentsActiveLabel"`
	CoreAgents            []CoreAgent        `yaml:"coreAgents" json:"coreAgents"`
	AgentsPanelLabel      string             `yaml:"agentsPanelLabel" json:"agentsPanelLabel"`
	SuggestedLabel        string             `yaml:"suggestedLabel" json:"suggestedLabel"`
	NotSuggestedLabel     string             `yaml:"notSuggestedLabel" json:"notSuggestedLabel"`
	SelectorTitle         string             `yaml:"selectorTitle" json:"selectorTitle"`
	ConfirmLabel          string             `yaml:"confirmLabel" json:"confirmLabel"`
	Agents                []CompositionAgent `yaml:"agents" json:"agents"`
}

type DashboardImage struct {
	Src     string `yaml:"src" json:"src" content:"shared,path"`
	Alt     string `yaml:"alt" json:"alt"`
	Caption string `yaml:"caption" json:"caption"`
}

type DashboardFeature struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type DashboardSection struct {
	SectionLabel    string             `yaml:"sectionLabel" json:"sectionLabel"`
	Title           string             `yaml:"title" json:"title"`
	DescriptionHTML string             `yaml:"descriptionHtml" json:"descriptionHtml" content:"html"`
	HeroImage       DashboardImage     `yaml:"heroImage" json:"heroImage"`
	GridImages      []DashboardImage   `yaml:"gridImages" json:"gridImages"`
	Features        []DashboardFeature `yaml:"features" json:"features"`
}

// WorkflowFlow is a command with its sequential stages.
type WorkflowFlow struct {
	Command     string   `yaml:"command" json:"command" content:"shared"`
	Subtitle    string   `yaml:"subtitle" json:"subtitle"`
	Description string   `yaml:"description" json:"description"`
	Stages      []string `yaml:"stages" json:"stages"`
}

type WorkflowSection struct {
	Header SectionHeader  `yaml:"header" json:"header"`
	Flows  []WorkflowFlow `yaml:"flows" json:"flows"`
}

type Gate struct {
	Text     string `yaml:"text" json:"text"`
	Optional bool   `yaml:"optional,omitempty" json:"optional,omitempty" content:"optional"`
}

type GateSection struct {
	Header        SectionHeader `yaml:"header" json:"header"`
	CoreLabel     string        `yaml:"coreLabel" json:"coreLabel"`
	Core          []Gate        `yaml:"core" json:"core"`
	OptionalLabel string        `yaml:"optionalLabel" json:"optionalLabel"`
	Optional      []Gate        `yaml:"optional" json:"optional"`
}

type Skill struct {
	Name        string `yaml:"name" json:"name" content:"shared"`
	Description string `yaml:"description" json:"description"`
}

type SkillDomain struct {
	Name     string  `yaml:"name" json:"name"`
	Skills   []Skill `yaml:"skills" json:"skills"`
	Optional bool    `yaml:"optional,omitempty" json:"optional,omitempty" content:"optional"`
}

type SkillSection struct {
	Header  SectionHeader `yaml:"header" json:"header"`
	Domains []SkillDomain `yaml:"domains" json:"domains"`
}

// InfraItem is a hook, template or core module. For hooks Label is the
// event name; otherwise a short description.
type InfraItem struct {
	Name  string `yaml:"name" json:"name" content:"shared"`
	Label string `yaml:"label" json:"label"`
}

type InfraGroup struct {
	ID       string      `yaml:"id" json:"id" content:"shared"`
	Title    string      `yaml:"title" json:"title"`
	Items    []InfraItem `yaml:"items" json:"items"`
	Footnote string      `yaml:"footnote,omitempty" json:"footnote,omitempty" content:"optional"`
}

type InfraSection struct {
	Header SectionHeader `yaml:"header" json:"header"`
	Groups []InfraGroup  `yaml:"groups" json:"groups"`
}

type Command struct {
	Command     string `yaml:"command" json:"command" content:"shared"`
	Description string `yaml:"description" json:"description"`
}

type CommandSection struct {
	Header SectionHeader `yaml:"header" json:"header"`
	List   []Command     `yaml:"list" json:"list"`
	// OptionalNote is an HTML note about optional agents joining flows.
	OptionalNote string `yaml:"optionalNote" json:"optionalNote" content:"html"`
}

type DetectableStack struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

type StackSection struct {
	Header SectionHeader     `yaml:"header" json:"header"`
	List   []DetectableStack `yaml:"list" json:"list"`
}

// UseCase is either an ordered list of Steps or a free Description.
type UseCase struct {
	Category    string   `yaml:"category" json:"category"`
	Color       string   `yaml:"color" json:"color" content:"shared,color"`
	Background  string   `yaml:"background" json:"background" content:"shared,color"`
	Title       string   `yaml:"title" json:"title"`
	Command     string   `yaml:"command,omitempty" json:"command,omitempty" content:"optional"`
	Steps       []string `yaml:"steps,omitempty" json:"steps,omitempty" content:"optional"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty" content:"optional,html"`
	Wide        bool     `yaml:"wide,omitempty" json:"wide,omitempty" content:"optional"`
}

type UseCaseSection struct {
	Header SectionHeader `yaml:"header" json:"header"`
	Cases  []UseCase     `yaml:"cases" json:"cases"`
}

type TraceabilityNode struct {
	Label       string `yaml:"label" json:"label"`
	Color       string `yaml:"color" json:"color" content:"shared,color"`
	Background  string `yaml:"background" json:"background" content:"shared,color"`
	BorderColor string `yaml:"borderColor" json:"borderColor" content:"shared,color"`
}

type Traceability struct {
	Title           string             `yaml:"title" json:"title"`
	DescriptionHTML string             `yaml:"descriptionHtml" json:"descriptionHtml" content:"html"`
	Nodes           []TraceabilityNode `yaml:"nodes" json:"nodes"`
}

type MemoryCard struct {
	Title           string `yaml:"title" json:"title"`
	DescriptionHTML string `yaml:"descriptionHtml" json:"descriptionHtml" content:"html"`
}

type MemoryFAQItem struct {
	Question   string `yaml:"question" json:"question"`
	AnswerHTML string `yaml:"answerHtml" json:"answerHtml" content:"html"`
}

type LibrarianExample struct {
	Label      string `yaml:"label" json:"label"`
	Question   string `yaml:"question" json:"question"`
	AnswerHTML string `yaml:"answerHtml" json:"answerHtml" content:"html"`
}

type LibrarianData struct {
	Title           string           `yaml:"title" json:"title"`
	Subtitle        string           `yaml:"subtitle" json:"subtitle"`
	DescriptionHTML []string         `yaml:"descriptionHtml" json:"descriptionHtml" content:"html"`
	Example         LibrarianExample `yaml:"example" json:"example"`
	ActivationHTML  string           `yaml:"activationHtml" json:"activationHtml" content:"html"`
}

type MemorySection struct {
	SectionLabel    string          `yaml:"sectionLabel" json:"sectionLabel"`
	Title           string          `yaml:"title" json:"title"`
	DescriptionHTML string          `yaml:"descriptionHtml" json:"descriptionHtml" content:"html"`
	Traceability    Traceability    `yaml:"traceability" json:"traceability"`
	Cards           []MemoryCard    `yaml:"cards" json:"cards"`
	Librarian       LibrarianData   `yaml:"librarian" json:"librarian"`
	FAQ             []MemoryFAQItem `yaml:"faq" json:"faq"`
}

type InstallTab struct {
	ID               string `yaml:"id" json:"id" content:"shared"`
	Label            string `yaml:"label" json:"label"`
	Command          string `yaml:"command" json:"command" content:"shared"`
	RequirementsHTML string `yaml:"requirementsHtml" json:"requirementsHtml" content:"html"`
}

type UninstallCard struct {
	Title     string `yaml:"title" json:"title"`
	Command   string `yaml:"command" json:"command" content:"shared"`
	AriaLabel string `yaml:"ariaLabel" json:"ariaLabel"`
}

type Uninstall struct {
	Title       string          `yaml:"title" json:"title"`
	Description string          `yaml:"description" json:"description"`
	Cards       []UninstallCard `yaml:"cards" json:"cards"`
}

type Update struct {
	Title           string `yaml:"title" json:"title"`
	DescriptionHTML string `yaml:"descriptionHtml" json:"descriptionHtml" content:"html"`
}

type InstallSection struct {
	SectionLabel string       `yaml:"sectionLabel" json:"sectionLabel"`
	Title        string       `yaml:"title" json:"title"`
	Description  string       `yaml:"description" json:"description"`
	Tabs         []InstallTab `yaml:"tabs" json:"tabs"`
	Uninstall    Uninstall    `yaml:"uninstall" json:"uninstall"`
	Update       Update       `yaml:"update" json:"update"`
}

type ConfigBlock struct {
	Title           string `yaml:"title" json:"title"`
	DescriptionHTML string `yaml:"descriptionHtml" json:"descriptionHtml" content:"html"`
}

type ConfigSection struct {
	SectionLabel    string `yaml:"sectionLabel" json:"sectionLabel"`
	Title           string `yaml:"title" json:"title"`
	DescriptionHTML string `yaml:"descriptionHtml" json:"descriptionHtml" content:"html"`
	// YAMLExample is the sample per-project settings file, front matter included.
	YAMLExample string        `yaml:"yamlExample" json:"yamlExample" content:"yamlfm"`
	Blocks      []ConfigBlock `yaml:"blocks" json:"blocks"`
}

type FAQItem struct {
	SVGContent string `yaml:"svgContent" json:"svgContent" content:"shared,html"`
	Question   string `yaml:"question" json:"question"`
	AnswerHTML string `yaml:"answerHtml" json:"answerHtml" content:"html"`
}

type FAQSection struct {
	Header SectionHeader `yaml:"header" json:"header"`
	Items  []FAQItem     `yaml:"items" json:"items"`
}

// ChangelogVersion is one release with its Keep a Changelog categories.
type ChangelogVersion struct {
	Version string   `yaml:"version" json:"version" content:"semver"`
	Date    string   `yaml:"date" json:"date" content:"date"`
	Added   []string `yaml:"added,omitempty" json:"added,omitempty" content:"optional,html"`
	Changed []string `yaml:"changed,omitempty" json:"changed,omitempty" content:"optional,html"`
	Fixed   []string `yaml:"fixed,omitempty" json:"fixed,omitempty" content:"optional,html"`
}

type FooterData struct {
	Version   string `yaml:"version" json:"version" content:"shared,version"`
	License   string `yaml:"license" json:"license" content:"shared"`
	GithubURL string `yaml:"githubUrl" json:"githubUrl" content:"shared,url"`
	DocsURL   string `yaml:"docsUrl" json:"docsUrl" content:"shared,url"`
	Tagline   string `yaml:"tagline" json:"tagline"`
	Slogan    string `yaml:"slogan" json:"slogan"`
}
