package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/immosim"
	"github.com/etnz/immosim/docs"
	"github.com/etnz/immosim/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation.
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

			The user manages a portfolio of income-producing buildings and is here to understand
			what his assumptions imply: acquisition prices, financing, projected revenue, exit values.

			Devise a plan of questions to ask each expert and come up with the best response to the
			user's request. The user will assume that you already read his portfolio, check the
			assumptions on file first to understand what he holds.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewMarketAnalyst returns an expert grounding answers in current market
// information through Google Search.
func NewMarketAnalyst() *Expert {
	return &Expert{
		Name: "MarketAnalyst",
		Description: `This is an expert analyst of commercial real estate markets.
		Very well aware of cap rates, rent levels, lease indices and interest rates,
		and of the latest market news. Ask the MarketAnalyst whenever you need recent
		or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in commercial real estate markets. You can search and find
			anything related to property markets, cap rates, rents, lease indexation and
			financing conditions. You leverage Google Search to ground your assertions.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewUnderwriter returns the expert in charge of the user's portfolio file.
// It can list the assumptions on file and run the simulation.
func NewUnderwriter(portfolioFile string) *Expert {
	lib := []Function{newAssumptionsFunc(portfolioFile), newSimulateFunc(portfolioFile)}

	return &Expert{
		Name: "Underwriter",
		Description: `This is the Underwriter. He is in charge of reading the user's portfolio
		of buildings and running the investment simulation over it. Ask him for the assumptions
		on file or for the simulated figures: total investment, financing split, debt service,
		projected revenue, net operating income and exit values.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an underwriter in charge of the user's portfolio of income-producing buildings.
				You know how to use the Tools to read the assumptions on file and to run the simulation.
				You are part of a team of experts, yours is everything about the user's portfolio.
				They might ask you questions in approximative language, figure out what they meant.

				Use the available tools to get
				  - the building assumptions on file
				  - the simulated results per building and for the whole portfolio
			`}}},
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

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func newAssumptionsFunc(portfolioFile string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Assumptions",
			Description: `Assumptions lists all buildings in the user's portfolio with the
			assumptions on file: annual rent, cap rates, loan-to-value, interest rate, term,
			occupancy, indexation and capex.

			` + must(docs.GetTopic("portfolio-file")),
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all buildings and their assumptions.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			buildings, err := decodeBuildings(portfolioFile)
			if err != nil {
				return errResponse(id, "Assumptions", err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Assumptions",
				Response: map[string]any{
					"output": renderer.BuildingsMarkdown(buildings),
				},
			}
		},
	}
}

func newSimulateFunc(portfolioFile string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Simulate",
			Description: `Simulate runs the full investment simulation over the user's portfolio
			and reports, per building: total investment, debt, equity, total interest paid,
			final occupancy, projected final revenue, net operating income after debt service,
			and the exit value. It also reports portfolio totals and any building whose
			assumptions failed validation.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted simulation report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			buildings, err := decodeBuildings(portfolioFile)
			if err != nil {
				return errResponse(id, "Simulate", err)
			}
			s, err := immosim.Simulate(immosim.DefaultConfig(), buildings)
			if err != nil {
				return errResponse(id, "Simulate", err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Simulate",
				Response: map[string]any{
					"output": renderer.SimulationMarkdown(s),
				},
			}
		},
	}
}

// decodeBuildings reads the portfolio file. A missing file is an empty
// portfolio.
func decodeBuildings(portfolioFile string) ([]immosim.Building, error) {
	f, err := os.Open(portfolioFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open portfolio file %q: %w", portfolioFile, err)
	}
	defer f.Close()

	buildings, err := immosim.DecodeBuildings(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode portfolio file %q: %w", portfolioFile, err)
	}
	return buildings, nil
}
