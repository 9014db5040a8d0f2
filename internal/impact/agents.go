package impact

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Element is a skill, knowledge area or ability from the occupation profile.
type Element struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Importance  float64 `json:"importance"`
}

// stems matches word-prefix stems ("analyz" matches "analyzes").
type stems struct {
	res []*regexp.Regexp
}

func newStems(words ...string) stems {
	var s stems
	for _, w := range words {
		s.res = append(s.res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)))
	}
	return s
}

func (s stems) any(text string) bool {
	for _, re := range s.res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func (s stems) count(text string) int {
	n := 0
	for _, re := range s.res {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

// Agent is a catalog entry describing an AI agent archetype.
type Agent struct {
	Name          string
	Icon          string
	Description   string
	BusinessValue string
	// Categories are the task categories the agent can take on.
	Categories []Category
	// BaseWeight scales the share of addressed tasks into a 0-100 relevance.
	BaseWeight float64

	triggers      stems
	skillKeywords []string
}

func (a Agent) handles(c Category) bool {
	for _, ac := range a.Categories {
		if ac == c {
			return true
		}
	}
	return false
}

func (a Agent) addresses(t TaskClassification) bool {
	return a.handles(t.Category) && a.triggers.any(t.Task.Description)
}

var agentCatalog = []Agent{
	{
		Name:          "Data Analytics Agent",
		Icon:          "chart-bar",
		Description:   "Automates data collection, statistical analysis, trend identification, and dashboard generation from structured and unstructured data sources.",
		BusinessValue: "Reduces analysis cycle time by 60-80%, enabling faster decision-making and freeing analysts for strategic interpretation.",
		Categories:    []Category{Automate, Augment},
		BaseWeight:    100,
		triggers:      newStems("analyz", "data", "statistic", "report", "trend", "forecast", "metric", "dashboard"),
		skillKeywords: []string{"mathematics", "statistic", "data", "critical thinking"},
	},
	{
		Name:          "Document Processing Agent",
		Icon:          "file-text",
		Description:   "Extracts, classifies, summarizes, and routes documents. Handles forms, contracts, invoices, and compliance paperwork with high accuracy.",
		BusinessValue: "Eliminates 70-90% of manual document handling, cutting processing costs and reducing error rates below 2%.",
		Categories:    []Category{Automate},
		BaseWeight:    100,
		triggers:      newStems("document", "record", "file", "form", "report", "compil", "paperwork", "contract", "invoice"),
		skillKeywords: []string{"clerical", "reading comprehension", "writing"},
	},
	{
		Name:          "Research & Intelligence Agent",
		Icon:          "search",
		Description:   "Conducts multi-source research, synthesizes findings, monitors competitive landscapes, and generates briefing documents with citations.",
		BusinessValue: "Compresses weeks of research into hours, surfacing relevant insights from thousands of sources simultaneously.",
		Categories:    []Category{Augment},
		BaseWeight:    100,
		triggers:      newStems("research", "investigat", "literature", "review", "survey", "study", "evaluat", "assess", "information"),
		skillKeywords: []string{"active learning", "critical thinking", "science"},
	},
	{
		Name:          "Content Generation Agent",
		Icon:          "pen-tool",
		Description:   "Drafts communications, technical writing, marketing copy, reports, and presentations aligned to brand voice and audience requirements.",
		BusinessValue: "Produces first drafts 10x faster, allowing professionals to focus on refinement, strategy, and stakeholder alignment.",
		Categories:    []Category{Augment},
		BaseWeight:    100,
		triggers:      newStems("writ", "draft", "communicat", "corresponden", "present", "content", "report", "memo", "proposal"),
		skillKeywords: []string{"writing", "english language", "communications and media"},
	},
	{
		Name:          "Code & Technical Assistant Agent",
		Icon:          "terminal",
		Description:   "Generates, reviews, debugs, and documents code. Assists with architecture decisions, testing strategies, and technical documentation.",
		BusinessValue: "Accelerates development velocity by 30-50%, reduces bug density, and automates routine code maintenance tasks.",
		Categories:    []Category{Automate, Augment},
		BaseWeight:    100,
		triggers:      newStems("code", "program", "software", "develop", "debug", "test", "system", "technical", "engineer", "algorithm"),
		skillKeywords: []string{"programming", "computers and electronics", "technology design", "systems analysis"},
	},
	{
		Name:          "Scheduling & Workflow Agent",
		Icon:          "calendar",
		Description:   "Manages calendars, coordinates meetings, automates approval workflows, tracks deadlines, and optimizes resource allocation across teams.",
		BusinessValue: "Recovers 5-10 hours per week per professional in coordination overhead, eliminating scheduling conflicts.",
		Categories:    []Category{Automate},
		BaseWeight:    100,
		triggers:      newStems("schedul", "coordinat", "calendar", "meeting", "workflow", "deadline", "assign", "prioritiz", "allocat", "track"),
		skillKeywords: []string{"time management", "coordination", "administrat"},
	},
	{
		Name:          "Customer Interaction Agent",
		Icon:          "message-circle",
		Description:   "Handles customer inquiries, triages support requests, provides personalized responses, and escalates complex issues to human specialists.",
		BusinessValue: "Resolves 40-60% of routine inquiries autonomously, improving response times from hours to seconds.",
		Categories:    []Category{Automate, Augment},
		BaseWeight:    100,
		triggers:      newStems("customer", "client", "patient", "consult", "service", "support", "inquir", "respond", "assist"),
		skillKeywords: []string{"customer and personal service", "service orientation", "social perceptiveness"},
	},
	{
		Name:          "Financial Analysis Agent",
		Icon:          "dollar-sign",
		Description:   "Performs budget analysis, financial modeling, variance reporting, invoice processing, and regulatory compliance checking for financial operations.",
		BusinessValue: "Automates 50-70% of routine financial tasks while improving accuracy and enabling real-time financial visibility.",
		Categories:    []Category{Automate, Augment},
		BaseWeight:    100,
		triggers:      newStems("financ", "budget", "account", "audit", "tax", "cost", "revenue", "invoic", "payroll", "compliance"),
		skillKeywords: []string{"economics and accounting", "financial resources", "mathematics"},
	},
	{
		Name:          "Quality & Compliance Agent",
		Icon:          "shield",
		Description:   "Monitors standards adherence, performs automated inspections, tracks regulatory changes, and generates compliance documentation.",
		BusinessValue: "Reduces compliance gaps by continuous monitoring, cutting audit preparation time by 60% and violation risk by 40%.",
		Categories:    []Category{Automate, Augment},
		BaseWeight:    100,
		triggers:      newStems("quality", "compliance", "regulat", "standard", "inspect", "audit", "safety", "certif", "policy", "monitor"),
		skillKeywords: []string{"quality control", "law and government", "public safety"},
	},
	{
		Name:          "Training & Knowledge Agent",
		Icon:          "book-open",
		Description:   "Creates personalized learning paths, generates training materials, answers knowledge-base queries, and tracks skill development progress.",
		BusinessValue: "Reduces onboarding time by 40%, provides 24/7 knowledge access, and adapts training to individual learning pace.",
		Categories:    []Category{Augment, HumanEssential},
		BaseWeight:    100,
		triggers:      newStems("train", "educat", "instruct", "teach", "learn", "mentor", "onboard", "knowledge"),
		skillKeywords: []string{"instructing", "learning strategies", "education and training"},
	},
}

// AgentCatalog returns a copy of the built-in agent catalog.
func AgentCatalog() []Agent {
	return append([]Agent(nil), agentCatalog...)
}

// AgentRecommendation is a ranked catalog agent.
type AgentRecommendation struct {
	Name           string  `json:"name"`
	Icon           string  `json:"icon"`
	Description    string  `json:"description"`
	BusinessValue  string  `json:"business_value"`
	Relevance      float64 `json:"relevance"`
	TasksAddressed int     `json:"tasks_addressed"`
	SkillMatch     bool    `json:"skill_match"`
}

// profileText flattens the occupation's skill and knowledge profile for
// keyword lookups.
func profileText(groups ...[]Element) string {
	var b strings.Builder
	for _, g := range groups {
		for _, e := range g {
			b.WriteString(strings.ToLower(e.Name))
			b.WriteByte(' ')
			b.WriteString(strings.ToLower(e.Description))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// RecommendAgents ranks catalog agents for the classified tasks. profile is
// the occupation's skills and knowledge.
func RecommendAgents(catalog []Agent, tasks []TaskClassification, profile []Element, p Policy) []AgentRecommendation {
	if len(tasks) == 0 {
		return nil
	}
	text := profileText(profile)

	var out []AgentRecommendation
	for _, agent := range catalog {
		addressed := 0
		for _, t := range tasks {
			if agent.addresses(t) {
				addressed++
			}
		}
		if addressed == 0 {
			continue
		}
		share := float64(addressed) / float64(len(tasks))
		relevance := agent.BaseWeight * share
		skillMatch := containsAny(text, agent.skillKeywords)
		if skillMatch {
			relevance += p.AgentSkillBonus
		}
		relevance = math.Min(100, relevance)
		if relevance <= 0 {
			continue
		}
		out = append(out, AgentRecommendation{
			Name:           agent.Name,
			Icon:           agent.Icon,
			Description:    agent.Description,
			BusinessValue:  agent.BusinessValue,
			Relevance:      math.Round(relevance*10) / 10,
			TasksAddressed: addressed,
			SkillMatch:     skillMatch,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Relevance > out[j].Relevance })
	if p.MaxAgents > 0 && len(out) > p.MaxAgents {
		out = out[:p.MaxAgents]
	}
	return out
}
