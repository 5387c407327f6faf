package swiss_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mgi25/chess/models"
	"github.com/mgi25/chess/swiss"
)

func TestCanGenerateNextRound(t *testing.T) {
	tests := []struct {
		name   string
		rounds []models.Round
		want   bool
	}{
		{
			name:   "no rounds",
			rounds: nil,
			want:   false,
		},
		{
			name: "all results decided",
			rounds: []models.Round{
				round(1,
					pairing(1, 1, intPtr(2), models.ResultPlayer1),
					pairing(2, 3, intPtr(4), models.ResultDraw),
				),
			},
			want: true,
		},
		{
			name: "bye counts as decided",
			rounds: []models.Round{
				round(1,
					pairing(1, 1, intPtr(2), models.ResultPlayer2),
					pairing(2, 3, nil, models.ResultBye),
				),
			},
			want: true,
		},
		{
			name: "one unplayed match blocks generation",
			rounds: []models.Round{
				round(1,
					pairing(1, 1, intPtr(2), models.ResultPlayer1),
					pairing(2, 3, intPtr(4), models.ResultDraw),
				),
				round(2,
					pairing(1, 1, intPtr(3), models.ResultPlayer1),
					pairing(2, 2, intPtr(4), models.ResultUnplayed),
				),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, swiss.CanGenerateNextRound(tt.rounds))
		})
	}
}
