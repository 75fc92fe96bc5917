package models

// Medical specialties accepted at registration.
var MedicalSpecialties = []string{
	"Family Medicine Physician", "Internist", "Pediatrician", "General Practitioner",
	"Geriatrician", "Cardiologist", "Dermatologist", "Endocrinologist",
	"Gastroenterologist", "Hepatologist", "Nephrologist", "Pulmonologist",
	"Rheumatologist", "Neurologist", "Allergist", "Immunologist",
	"Infectious Disease Specialist", "Medical Oncologist", "Radiation Oncologist",
	"Hematologist", "General Surgeon", "Cardiothoracic Surgeon", "Neurosurgeon",
	"Orthopedic Surgeon", "Plastic Surgeon", "Transplant Surgeon", "Vascular Surgeon",
	"Colorectal Surgeon", "Oral Surgeon", "Maxillofacial Surgeon", "Otolaryngologist",
	"Ophthalmologist", "Urologist", "Gynecologic Oncologist", "Bariatric Surgeon",
	"Anesthesiologist", "Emergency Medicine Physician", "Hospitalist", "Intensivist",
	"Critical Care Physician", "Pathologist", "Radiologist", "Interventional Radiologist",
	"Nuclear Medicine Specialist", "Psychiatrist", "Addiction Psychiatrist",
	"Physiatrist", "Obstetrician", "Gynecologist", "Maternal-Fetal Medicine Specialist",
	"Reproductive Endocrinologist", "Adolescent Medicine Specialist", "Neonatologist",
}

var specialtySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(MedicalSpecialties))
	for _, s := range MedicalSpecialties {
		m[s] = struct{}{}
	}
	return m
}()

func IsValidSpecialty(s string) bool {
	_, ok := specialtySet[s]
	return ok
}
