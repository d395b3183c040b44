package config

import "errors"

func ValidateForRun(cfg *Config) error {
	var errs []error

	if cfg.BookingStoreURL == "" {
		errs = append(errs, ErrBookingStoreURLMissing)
	}
	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Mail == nil || cfg.Mail.From == "" {
		errs = append(errs, errors.New("MAIL_FROM is required"))
	}

	return errors.Join(errs...)
}
