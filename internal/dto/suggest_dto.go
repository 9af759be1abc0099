package dto

// SuggestReq AI 润色请求；content 的必填校验放在 Service 层，保证错误码统一
type SuggestReq struct {
	Content string `json:"content"`
}

type SuggestResp struct {
	Suggestion string `json:"suggestion"`
}

type OrgSuggestResp struct {
	Suggestion     string `json:"suggestion"`
	OrganisationID string `json:"organisation_id"`
}
