package diseases

import "context"

// OwnerOf expone el ownerUserID de una enfermedad.
// Se usa para evitar ciclos de imports entre módulos (symptoms -> diseases).
func (s *Service) OwnerOf(ctx context.Context, diseaseID string) (string, error) {
	d, err := s.GetByID(ctx, diseaseID)
	if err != nil {
		return "", err
	}
	return d.OwnerUserID, nil
}
