package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/vaultd/collateral"
	"github.com/vaultd/collateral/renderer"
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

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user operates a collateral ledger: accounts deposit tokens that back their
			obligations, and everything is valued in one reporting currency through a price oracle.
			He is here primarily to understand the current collateral posture, balances and values.

			Devise a plan of questions to ask to each expert and come up with the best response
			to the user's request. Report figures exactly as the experts give them, never invent
			a balance or a rate.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTreasurer creates the expert in charge of reading the collateral ledger.
func NewTreasurer(system *collateral.System) *Expert {
	lib := []Function{balancesFunc(system), accountFunc(system), tokensFunc(system)}

	return &Expert{
		Name: "Treasurer",
		Description: `This is the Treasurer. He is in charge of reading the collateral ledger.
		He can report the registered tokens, the system-wide collateral valuation, and the
		collateral held by any single account.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the treasurer in charge of the collateral ledger.
				You know how to use the Tools to extract relevant information about collateral:
				  - the registered tokens, in enrollment order
				  - the system-wide balances and their value in the reporting currency
				  - one account's balances and value

				Amounts are integers in each token's smallest unit; values are in the
				reporting currency. Quote them exactly as the tools return them.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func balancesFunc(system *collateral.System) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "CollateralBalances",
			Description: `CollateralBalances prices every registered token's total balance with the
			oracle and reports the grand total in the reporting currency.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of every registered token with its amount, rate and value, and the total collateral value.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			report, err := system.NewBalanceReport(ctx)
			if err != nil {
				return errorResponse(id, "CollateralBalances", err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "CollateralBalances",
				Response: map[string]any{
					"output": renderer.BalancesMarkdown(report),
				},
			}
		},
	}
}

func accountFunc(system *collateral.System) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "AccountCollateral",
			Description: `AccountCollateral prices the collateral held by a single account and
			reports its value in the reporting currency.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"account": {
						Type:        genai.TypeString,
						Description: "The account identifier to report on.",
					},
				},
				Required: []string{"account"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the account's tokens with amounts, rates and values.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			account, ok := args["account"].(string)
			if !ok {
				return errorResponse(id, "AccountCollateral", fmt.Errorf("argument 'account' is not a string but %T", args["account"]))
			}
			report, err := system.NewAccountReport(ctx, account)
			if err != nil {
				return errorResponse(id, "AccountCollateral", err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "AccountCollateral",
				Response: map[string]any{
					"output": renderer.AccountMarkdown(report),
				},
			}
		},
	}
}

func tokensFunc(system *collateral.System) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "RegisteredTokens",
			Description: `RegisteredTokens lists every token that ever received a deposit, in
			first-enrollment order. Tokens stay listed even when their balance returned to zero.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted list of the registered tokens.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return &genai.FunctionResponse{
				ID:   id,
				Name: "RegisteredTokens",
				Response: map[string]any{
					"output": renderer.TokensMarkdown(system.Ledger.Tokens()),
				},
			}
		},
	}
}
