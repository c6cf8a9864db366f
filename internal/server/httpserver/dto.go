package httpserver

import "github.com/dmitrijs2005/userauth/internal/server/models"

type credentialsRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type pageQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=25" binding:"min=1,max=100"`
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

type UserPageDTO struct {
	Results      []UserDTO `json:"results"`
	Page         int       `json:"page"`
	Limit        int       `json:"limit"`
	TotalPages   int       `json:"total_pages"`
	TotalResults int       `json:"total_results"`
}

type MessageDTO struct {
	Message string `json:"message"`
}

func toUserDTO(u *models.User) UserDTO {
	return UserDTO{ID: u.ID, Username: u.UserName, IsActive: u.IsActive}
}

func toUserPageDTO(p models.Page[models.User]) UserPageDTO {
	results := make([]UserDTO, 0, len(p.Results))
	for i := range p.Results {
		results = append(results, toUserDTO(&p.Results[i]))
	}
	return UserPageDTO{
		Results:      results,
		Page:         p.Page,
		Limit:        p.Limit,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
	}
}
