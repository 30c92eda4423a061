package mapper

import (
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/dto"
	userdomain "github.com/hoangtung01022003/Animation-Film-Showcase/internal/user/domain"
)

func UserToDTO(user userdomain.User) dto.User {
	return dto.User{
		ID:        string(user.ID),
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}
}
