package serializer

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is an ingredient amount that accepts either a JSON number or a
// numeric string ("5" coerces to 5). A non-numeric value is kept around so
// validation can report it in order instead of failing the decode.
type Amount struct {
	value int
	valid bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = str
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// reported by Validate, not here
		return nil
	}
	a.value = n
	a.valid = true
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.value)
}

// Int returns the coerced amount and whether the input was numeric at all.
func (a Amount) Int() (int, bool) {
	return a.value, a.valid
}

// IngredientAmountPayload is one {id, amount} entry of a write payload.
type IngredientAmountPayload struct {
	ID     uint   `json:"id"`
	Amount Amount `json:"amount"`
}

// RecipePayload is the wire shape accepted when creating or updating a
// recipe. It differs from the read shape: tags and ingredients are id
// references and image is a base64 data URI.
type RecipePayload struct {
	Name        string                    `json:"name"`
	Image       string                    `json:"image"`
	Text        string                    `json:"text"`
	CookingTime int                       `json:"cooking_time"`
	Tags        []uint                    `json:"tags"`
	Ingredients []IngredientAmountPayload `json:"ingredients"`
}

// IngredientLine is a validated (ingredient id, amount) pair.
type IngredientLine struct {
	IngredientID uint
	Amount       int
}

// ValidatedRecipe is the output of RecipePayload.Validate: everything the
// persistence layer needs, with the image already decoded.
type ValidatedRecipe struct {
	Name        string
	Text        string
	CookingTime int
	Image       *ImageUpload
	TagIDs      []uint
	Ingredients []IngredientLine
}

// Validate checks a create payload and returns its validated form. Checks
// run in a fixed order and the first failure is reported: ingredients
// present, no duplicate ingredient ids, amounts positive, cooking time
// positive, tags present without duplicates, then scalar fields and the
// image.
func (p *RecipePayload) Validate() (*ValidatedRecipe, error) {
	return p.validate(false)
}

// ValidateUpdate checks an update payload. Ingredients stay required since
// the line-item set is always cleared and rebuilt, while tags and image
// may be omitted to keep their current values.
func (p *RecipePayload) ValidateUpdate() (*ValidatedRecipe, error) {
	return p.validate(true)
}

func (p *RecipePayload) validate(partial bool) (*ValidatedRecipe, error) {
	if len(p.Ingredients) == 0 {
		return nil, newValidationError("ingredients", "ingredient list is empty")
	}

	seen := make(map[uint]bool, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		if seen[ing.ID] {
			return nil, newValidationError("ingredients", "duplicate ingredient in list")
		}
		seen[ing.ID] = true
	}

	lines := make([]IngredientLine, 0, len(p.Ingredients))
	for _, ing := range p.Ingredients {
		amount, ok := ing.Amount.Int()
		if !ok || amount <= 0 {
			return nil, newValidationError("ingredients", "amount must be a positive number")
		}
		lines = append(lines, IngredientLine{IngredientID: ing.ID, Amount: amount})
	}

	if p.CookingTime < 1 {
		return nil, newValidationError("cooking_time", "cooking time must be at least 1")
	}

	if len(p.Tags) == 0 && !partial {
		return nil, newValidationError("tags", "at least one tag is required")
	}
	seenTags := make(map[uint]bool, len(p.Tags))
	for _, id := range p.Tags {
		if seenTags[id] {
			return nil, newValidationError("tags", "duplicate tag in list")
		}
		seenTags[id] = true
	}

	if strings.TrimSpace(p.Name) == "" {
		return nil, newValidationError("name", "name is required")
	}
	if strings.TrimSpace(p.Text) == "" {
		return nil, newValidationError("text", "text is required")
	}
	var image *ImageUpload
	if p.Image == "" {
		if !partial {
			return nil, newValidationError("image", "image is required")
		}
	} else {
		decoded, err := DecodeImageField(p.Image)
		if err != nil {
			return nil, err
		}
		image = decoded
	}

	return &ValidatedRecipe{
		Name:        p.Name,
		Text:        p.Text,
		CookingTime: p.CookingTime,
		Image:       image,
		TagIDs:      p.Tags,
		Ingredients: lines,
	}, nil
}
