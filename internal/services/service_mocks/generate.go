package service_mocks

//go:generate mockgen -source=../interfaces.go -destination=service_mocks.go -package=service_mocks

// The generated mocks are checked in so tests build without mockgen
// installed. To regenerate after changing the interfaces, run:
//   go generate ./internal/services/service_mocks
