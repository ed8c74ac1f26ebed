package agent

import (
	"context"
	"fmt"

	"github.com/etnz/sberreport"
	"github.com/etnz/sberreport/docs"
	"github.com/etnz/sberreport/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and fully dedicated to you, they keep context of your previous questions.

			The user is here to understand his broker statements: what he holds, what moved
			on his accounts and when. Ask the Analyst before assuming anything about the
			statements, he is the only source of the actual figures.

			Devise a plan of questions for the experts and come up with the best response
			to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewMarkets is an expert with web search, for questions the statements
// cannot answer: issuers, funds, market context.
func NewMarkets() *Expert {
	return &Expert{
		Name: "Markets",
		Description: `This expert follows financial markets and institutions and can search
		the web for recent information about securities, funds and issuers.
		Ask Markets whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in financial markets. You can search and find about anything
			related to financial institutions, companies, markets and funds, and you
			leverage Google Search to ground your assertions in a solid truth.
			Securities are usually referred to by ISIN in this conversation, resolve them
			to their usual names.
				`}}},
		},
	}
}

// NewAnalyst is the expert owning the user's parsed statements. Every figure
// about the user's accounts comes from its tools.
func NewAnalyst(set *sberreport.ReportSet) *Expert {
	lib := []Function{
		statementsTool(set),
		statementTool(set),
		positionsTool(set),
		cashFlowsTool(set),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the statement analyst. He has the user's parsed broker statements
		and can list them, render any single statement in full, and compute the merged
		positions and cash flows over the whole batch or one account.
		Every figure about the user's accounts must come from him.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's broker statements.
				You use the Tools to read the parsed statements, you never invent figures.
				The tools return markdown tables; read them and answer precisely.
				Mind that amounts can be absent: an absent amount is not a zero.

				Below is the documentation of the merge semantics behind your tools.

				` + must(docs.GetTopic("merging"))}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func output(id, name, text string) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": text}}
}

func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"error": err.Error()}}
}

func statementsTool(set *sberreport.ReportSet) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Statements",
			Description: `Statements lists the loaded broker statements with their name, account,
			account type, period and creation date.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table with one row per loaded statement.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return output(id, "Statements", renderer.SetMarkdown(set))
		},
	}
}

func statementTool(set *sberreport.ReportSet) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Statement",
			Description: `Statement renders one loaded statement in full: header facts, asset
			valuation, cash flows, portfolio and IIS contributions.
			Use Statements first to learn the names.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "The name of the statement, as listed by Statements.",
					},
				},
				Required: []string{"name"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The statement rendered as markdown.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, ok := args["name"].(string)
			if !ok {
				return failure(id, "Statement", fmt.Errorf("argument 'name' is not a string but %T", args["name"]))
			}
			for r := range set.All() {
				if r.Name == name {
					return output(id, "Statement", renderer.ReportMarkdown(r))
				}
			}
			return failure(id, "Statement", fmt.Errorf("no statement named %q is loaded", name))
		},
	}
}

func positionsTool(set *sberreport.ReportSet) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Positions",
			Description: `Positions merges the security positions of the loaded statements by
			ISIN, summing quantities and values.`,
			Parameters: accountParameter(),
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table with one row per security.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := selectAccount(set, args)
			if err != nil {
				return failure(id, "Positions", err)
			}
			merged, err := s.MergePositions()
			if err != nil {
				return failure(id, "Positions", err)
			}
			return output(id, "Positions", renderer.PositionsMarkdown(merged))
		},
	}
}

func cashFlowsTool(set *sberreport.ReportSet) Function {
	decl := accountParameter()
	decl.Properties["suppress_duplicates"] = &genai.Schema{
		Type: genai.TypeBoolean,
		Description: `Drop boundary-day rows repeated by adjacent statements.
		Off by default, dropping rows loses data.`,
	}
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "CashFlows",
			Description: `CashFlows merges the dated cash movements of the loaded statements
			into one ledger sorted by date, with per-currency totals.`,
			Parameters: decl,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table with one row per cash movement.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := selectAccount(set, args)
			if err != nil {
				return failure(id, "CashFlows", err)
			}
			var o sberreport.MergeOptions
			if b, ok := args["suppress_duplicates"].(bool); ok {
				o.SuppressDuplicates = b
			}
			return output(id, "CashFlows", renderer.CashFlowMarkdown(s.MergeCashFlows(o)))
		},
	}
}

func accountParameter() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"account": {
				Type:        genai.TypeString,
				Description: "Restrict to this contract number. All accounts when omitted.",
			},
		},
	}
}

// selectAccount narrows the set to one contract when the call asks for it.
func selectAccount(set *sberreport.ReportSet, args map[string]any) (*sberreport.ReportSet, error) {
	iaccount, ok := args["account"]
	if !ok {
		return set, nil
	}
	account, ok := iaccount.(string)
	if !ok {
		return nil, fmt.Errorf("argument 'account' is not a string but %T", iaccount)
	}
	if account == "" {
		return set, nil
	}
	var reports []*sberreport.Report
	for r := range set.ByAccount(account) {
		reports = append(reports, r)
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("no statements for account %q, known accounts: %v", account, set.Accounts())
	}
	return sberreport.NewReportSet(reports...), nil
}
