package memory

import (
	analyticsRepo "styledecor/database/repository/analytics"
	bookingRepo "styledecor/database/repository/booking"
	paymentRepo "styledecor/database/repository/payment"
	serviceRepo "styledecor/database/repository/service"
	userRepo "styledecor/database/repository/user"
)

var (
	_ bookingRepo.BookingRepository     = (*BookingRepo)(nil)
	_ serviceRepo.ServiceRepository     = (*ServiceRepo)(nil)
	_ paymentRepo.PaymentRepository     = (*PaymentRepo)(nil)
	_ userRepo.UserRepository           = (*UserRepo)(nil)
	_ analyticsRepo.AnalyticsRepository = (*AnalyticsRepo)(nil)
)
