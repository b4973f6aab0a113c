package audio

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "single zhuyin symbol",
			text:    "ㄅ",
			wantErr: false,
		},
		{
			name:    "consonant with vowel",
			text:    "ㄖㄨ",
			wantErr: false,
		},
		{
			name:    "sentence",
			text:    "爸爸在看報紙。",
			wantErr: false,
		},
		{
			name:    "latin romanization",
			text:    "ba",
			wantErr: false,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "whitespace only",
			text:    "   \t\n",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "exactly at limit",
			text:    strings.Repeat("你", MaxTextLength),
			wantErr: false,
		},
		{
			name:    "over limit",
			text:    strings.Repeat("你", MaxTextLength+1),
			wantErr: true,
			errMsg:  "text too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateText() error = %v, want error containing %v", err.Error(), tt.errMsg)
				}
			}
		})
	}
}
