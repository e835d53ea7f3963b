package service

import "golang.org/x/crypto/bcrypt"

// passwordCost es el factor de trabajo de bcrypt (ajustable si el hardware crece).
const passwordCost = 10

// HashPassword genera un hash bcrypt con salt aleatorio para la contraseña.
func HashPassword(plain string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// CheckPassword compara en tiempo constante la contraseña contra el hash almacenado.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
