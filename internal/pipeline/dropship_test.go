package pipeline_test

import (
	"strings"
	"testing"

	"github.com/jmallard/manifest/internal/pipeline"
)

func TestValidateChannel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"standard", "standard", pipeline.ChannelStandard, false},
		{"dropship uppercase", "DROPSHIP", pipeline.ChannelDropship, false},
		{"absent rejected", "", "", true},
		{"unknown rejected", "express", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pipeline.ValidateChannel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateChannel(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateChannel(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidateChannel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateDropshipFBA(t *testing.T) {
	t.Run("cased shipment with full case pack", func(t *testing.T) {
		raw := pipeline.RawFieldSet{
			pipeline.FieldDropshipType:    "FBA",
			pipeline.FieldIsCase:          "yes",
			pipeline.FieldPerCaseQuantity: "12",
			pipeline.FieldNumberOfCases:   "4",
		}

		data, err := pipeline.ValidateDropship(raw, nil)
		if err != nil {
			t.Fatalf("ValidateDropship error: %v", err)
		}

		if data.Type != pipeline.DropshipFBA {
			t.Errorf("Type = %q, want FBA", data.Type)
		}
		if !data.IsCase || data.PerCaseQuantity != 12 || data.NumberOfCases != 4 {
			t.Errorf("case pack = {%v %d %d}, want {true 12 4}", data.IsCase, data.PerCaseQuantity, data.NumberOfCases)
		}
		if data.LabelSource != "" || data.LabelURL != "" || data.Address != nil {
			t.Error("label fields should be empty for FBA")
		}
	})

	t.Run("uncased shipment needs no case pack", func(t *testing.T) {
		raw := pipeline.RawFieldSet{
			pipeline.FieldDropshipType: "fba",
			pipeline.FieldIsCase:       "no",
		}

		data, err := pipeline.ValidateDropship(raw, nil)
		if err != nil {
			t.Fatalf("ValidateDropship error: %v", err)
		}
		if data.IsCase {
			t.Error("IsCase = true, want false")
		}
	})

	t.Run("missing number of cases is named in the failure", func(t *testing.T) {
		raw := pipeline.RawFieldSet{
			pipeline.FieldDropshipType:    "FBA",
			pipeline.FieldIsCase:          "yes",
			pipeline.FieldPerCaseQuantity: "12",
		}

		_, err := pipeline.ValidateDropship(raw, nil)
		if err == nil {
			t.Fatal("expected failure, got nil")
		}
		if !strings.Contains(err.Error(), pipeline.FieldNumberOfCases) {
			t.Errorf("failure %q does not name %q", err.Error(), pipeline.FieldNumberOfCases)
		}
	})

	t.Run("aggregates every offending field", func(t *testing.T) {
		raw := pipeline.RawFieldSet{
			pipeline.FieldDropshipType: "FBA",
			pipeline.FieldIsCase:       "yes",
		}

		_, err := pipeline.ValidateDropship(raw, nil)
		if err == nil {
			t.Fatal("expected failure, got nil")
		}

		for _, field := range []string{pipeline.FieldPerCaseQuantity, pipeline.FieldNumberOfCases} {
			if !strings.Contains(err.Error(), field) {
				t.Errorf("failure %q does not name %q", err.Error(), field)
			}
		}
	})

	t.Run("missing is case", func(t *testing.T) {
		raw := pipeline.RawFieldSet{
			pipeline.FieldDropshipType: "FBA",
		}

		_, err := pipeline.ValidateDropship(raw, nil)
		if err == nil {
			t.Fatal("expected failure, got nil")
		}
		if !strings.Contains(err.Error(), pipeline.FieldIsCase) {
			t.Errorf("failure %q does not name %q", err.Error(), pipeline.FieldIsCase)
		}
	})
}

func TestValidateDropshipRegular(t *testing.T) {
	t.Run("public url with valid label", func(t *testing.T) {
		raw := pipeline.RawFieldSet{
			pipeline.FieldDropshipType: "Regular",
			pipeline.FieldLabelSource:  "Public URL",
			pipeline.FieldLabelURL:     "https://labels.example.com/l/123",
		}

		data, err := pipeline.ValidateDropship(raw, nil)
		if err != nil {
			t.Fatalf("ValidateDropship error: %v", err)
		}
		if data.LabelSource != pipeline.LabelSourcePublicURL {
			t.Errorf("LabelSource = %q", data.LabelSource)
		}
		if data.LabelURL != "https://labels.example.com/l/123" {
			t.Errorf("LabelURL = %q", data.LabelURL)
		}
	})

	t.Run("public url with malformed label", func(t *testing.T) {
		raw := pipeline.RawFieldSet{
			pipeline.FieldDropshipType: "Regular",
			pipeline.FieldLabelSource:  "public url",
			pipeline.FieldLabelURL:     "not a url",
		}

		_, err := pipeline.ValidateDropship(raw, nil)
		if err == nil {
			t.Fatal("expected failure, got nil")
		}
		if !strings.Contains(err.Error(), pipeline.FieldLabelURL) {
			t.Errorf("failure %q does not name %q", err.Error(), pipeline.FieldLabelURL)
		}
	})

	t.Run("system generated copies address verbatim", func(t *testing.T) {
		raw := pipeline.RawFieldSet{
			pipeline.FieldDropshipType: "Regular",
			pipeline.FieldLabelSource:  "System Generated",
		}
		address := &pipeline.ShippingAddress{Name: "Dana Ruiz", City: "Reno", Zip: "89501"}

		data, err := pipeline.ValidateDropship(raw, address)
		if err != nil {
			t.Fatalf("ValidateDropship error: %v", err)
		}
		if data.Address == nil || *data.Address != *address {
			t.Errorf("Address = %+v, want %+v", data.Address, address)
		}
	})

	t.Run("missing label source", func(t *testing.T) {
		raw := pipeline.RawFieldSet{
			pipeline.FieldDropshipType: "Regular",
		}

		_, err := pipeline.ValidateDropship(raw, nil)
		if err == nil {
			t.Fatal("expected failure, got nil")
		}
		if !strings.Contains(err.Error(), pipeline.FieldLabelSource) {
			t.Errorf("failure %q does not name %q", err.Error(), pipeline.FieldLabelSource)
		}
	})
}

func TestValidateDropshipUnknownType(t *testing.T) {
	raw := pipeline.RawFieldSet{
		pipeline.FieldDropshipType: "wholesale",
	}

	_, err := pipeline.ValidateDropship(raw, nil)
	if err == nil {
		t.Fatal("expected failure, got nil")
	}
	if !strings.Contains(err.Error(), pipeline.FieldDropshipType) {
		t.Errorf("failure %q does not name %q", err.Error(), pipeline.FieldDropshipType)
	}
}
