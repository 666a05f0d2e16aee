package command

import "catalog-service/internal/application/common"

// IssueTokensCommand mints a token pair for the user with the given uuid.
type IssueTokensCommand struct {
	UUID string
}

// RefreshTokensCommand exchanges a refresh token for a new pair.
type RefreshTokensCommand struct {
	RefreshToken string
}

type TokensCommandResult struct {
	User         *common.UserResult `json:"user"`
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
}
