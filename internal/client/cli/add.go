package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/loreforge/loreforge/internal/models"
)

const addUsage = "Usage: loreforge add <character|location|faction|custom>"

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing category. %s", addUsage)
	}
	category := args[0]

	payload, err := c.promptPayload(category, models.Payload{Category: category})
	if err != nil {
		return err
	}

	element, err := c.dataService.CreateElement(ctx, c.projectID, payload)
	if err != nil {
		return fmt.Errorf("failed to add element: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ %s %q added.\n", category, payload.Name)
	c.io.Printf("ID: %s\n", element.ClientID)
	c.io.Println()
	c.io.Println("Stored locally. Run 'loreforge sync' to push to the server.")
	return nil
}

// promptPayload collects element fields interactively. Existing values act
// as defaults so edit can reuse the same flow; empty input keeps them.
func (c *Cli) promptPayload(category string, current models.Payload) (models.Payload, error) {
	payload := current.Clone()
	payload.Category = category

	name, err := c.readDefault("Name", current.Name)
	if err != nil {
		return models.Payload{}, err
	}
	payload.Name = name

	switch category {
	case models.CategoryCharacter:
		fields := current.Character
		if fields == nil {
			fields = &models.CharacterFields{}
		}
		if fields.Species, err = c.readDefault("Species", fields.Species); err != nil {
			return models.Payload{}, err
		}
		if fields.Occupation, err = c.readDefault("Occupation", fields.Occupation); err != nil {
			return models.Payload{}, err
		}
		if fields.Biography, err = c.readDefault("Biography", fields.Biography); err != nil {
			return models.Payload{}, err
		}
		aliases, err := c.readDefault("Aliases (comma-separated)", strings.Join(fields.Aliases, ", "))
		if err != nil {
			return models.Payload{}, err
		}
		fields.Aliases = splitList(aliases)
		payload.Character = fields

	case models.CategoryLocation:
		fields := current.Location
		if fields == nil {
			fields = &models.LocationFields{}
		}
		if fields.Region, err = c.readDefault("Region", fields.Region); err != nil {
			return models.Payload{}, err
		}
		if fields.Population, err = c.readDefault("Population", fields.Population); err != nil {
			return models.Payload{}, err
		}
		if fields.Description, err = c.readDefault("Description", fields.Description); err != nil {
			return models.Payload{}, err
		}
		payload.Location = fields

	case models.CategoryFaction:
		fields := current.Faction
		if fields == nil {
			fields = &models.FactionFields{}
		}
		if fields.Leader, err = c.readDefault("Leader", fields.Leader); err != nil {
			return models.Payload{}, err
		}
		if fields.Goals, err = c.readDefault("Goals", fields.Goals); err != nil {
			return models.Payload{}, err
		}
		members, err := c.readDefault("Members (comma-separated)", strings.Join(fields.Members, ", "))
		if err != nil {
			return models.Payload{}, err
		}
		fields.Members = splitList(members)
		payload.Faction = fields

	case models.CategoryCustom:
		extra, err := c.promptExtras(current.Extra)
		if err != nil {
			return models.Payload{}, err
		}
		payload.Extra = extra

	default:
		return models.Payload{}, fmt.Errorf("unknown category: %s. %s", category, addUsage)
	}

	prompts, err := c.promptAnswers(payload.Prompts)
	if err != nil {
		return models.Payload{}, err
	}
	payload.Prompts = prompts

	return payload, nil
}

func (c *Cli) promptExtras(current map[string]any) (map[string]any, error) {
	extra := make(map[string]any, len(current))
	for k, v := range current {
		extra[k] = v
	}

	c.io.Println("Custom fields (empty key to finish):")
	for {
		key, err := c.io.ReadInput("  Field name: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read field name: %w", err)
		}
		if key == "" {
			break
		}
		value, err := c.io.ReadInput("  Value: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read field value: %w", err)
		}
		extra[key] = value
	}
	if len(extra) == 0 {
		return nil, nil
	}
	return extra, nil
}

func (c *Cli) promptAnswers(current []models.PromptAnswer) ([]models.PromptAnswer, error) {
	prompts := append([]models.PromptAnswer(nil), current...)

	c.io.Println("Worldbuilding prompts (empty question to finish):")
	for {
		question, err := c.io.ReadInput("  Question: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read question: %w", err)
		}
		if question == "" {
			break
		}
		answer, err := c.io.ReadInput("  Answer: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read answer: %w", err)
		}
		prompts = append(prompts, models.PromptAnswer{Question: question, Answer: answer})
	}
	return prompts, nil
}

// readDefault prompts with the current value shown; empty input keeps it.
func (c *Cli) readDefault(label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	if input == "" {
		return current, nil
	}
	return input, nil
}

func splitList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
